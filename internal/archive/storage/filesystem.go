package storage

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/archive"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
	protofmt "github.com/oneee-playground/schedsim/internal/util/proto"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	_filepathHeaderPrefix  = "header"
	_filepathOutcomePrefix = "outcome"
)

var ErrHeaderNotFound = errors.New("header not found")

// FSStorage lays runs out as <root>/<runID>/<algorithm>/{header,outcome}.
// Each file is a sequence of size-prefixed protobuf messages.
type FSStorage struct {
	root string
}

var _ archive.Storage = (*FSStorage)(nil)

func NewFSStorage(root string) *FSStorage {
	return &FSStorage{root: root}
}

func (s *FSStorage) path(runID uuid.UUID, alg sched.Algorithm, prefix string) string {
	return filepath.Join(s.root, runID.String(), archive.Slug(alg), prefix)
}

func (s *FSStorage) InsertReport(ctx context.Context, report sim.Report) error {
	for _, result := range report.Results() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		header, err := archive.HeaderRecord(report, result)
		if err != nil {
			return err
		}

		if err := s.insertRaw(s.path(report.ID, result.Algorithm, _filepathHeaderPrefix), header); err != nil {
			return errors.Wrapf(err, "inserting %s header", result.Algorithm)
		}

		for _, o := range result.Outcomes {
			rec, err := archive.OutcomeRecord(o)
			if err != nil {
				return err
			}

			if err := s.insertRaw(s.path(report.ID, result.Algorithm, _filepathOutcomePrefix), rec); err != nil {
				return errors.Wrapf(err, "inserting %s outcome", result.Algorithm)
			}
		}
	}

	return nil
}

func (s *FSStorage) ListRuns(ctx context.Context) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrap(err, "reading archive root")
	}

	runIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		runID, err := uuid.Parse(entry.Name())
		if err != nil {
			continue
		}

		runIDs = append(runIDs, runID)
	}

	sort.Slice(runIDs, func(i, j int) bool {
		return runIDs[i].String() < runIDs[j].String()
	})

	return runIDs, nil
}

// FetchHeader returns the most recently inserted header of a run.
func (s *FSStorage) FetchHeader(ctx context.Context, runID uuid.UUID, alg sched.Algorithm) (*structpb.Struct, error) {
	file, err := os.Open(s.path(runID, alg, _filepathHeaderPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "opening header path")
	}
	defer file.Close()

	dec := protofmt.NewDecoder(bufio.NewReader(file))

	var header *structpb.Struct
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		dst := new(structpb.Struct)

		err := dec.Decode(dst)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding header")
		}

		header = dst
	}

	if header == nil {
		return nil, ErrHeaderNotFound
	}

	return header, nil
}

func (s *FSStorage) Stream(ctx context.Context, runID uuid.UUID, alg sched.Algorithm) (<-chan *structpb.Struct, <-chan error) {
	stream := make(chan *structpb.Struct)
	errchan := make(chan error, 1)

	go func() {
		defer close(stream)

		file, err := os.Open(s.path(runID, alg, _filepathOutcomePrefix))
		if err != nil {
			errchan <- errors.Wrap(err, "opening outcome path")
			return
		}
		defer file.Close()

		dec := protofmt.NewDecoder(bufio.NewReader(file))
		for {
			dst := new(structpb.Struct)

			err := dec.Decode(dst)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				errchan <- errors.Wrap(err, "decoding outcome")
				return
			}

			select {
			case <-ctx.Done():
				errchan <- errors.Wrap(ctx.Err(), "streaming outcomes")
				return
			case stream <- dst:
			}
		}
	}()

	return stream, errchan
}

func (s *FSStorage) insertRaw(path string, m proto.Message) error {
	b, err := protofmt.MarshalWithSize(m)
	if err != nil {
		return errors.Wrap(err, "marshaling record")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0744); err != nil {
		return errors.Wrap(err, "mkdir all")
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return errors.Wrap(err, "writing to file")
	}

	return nil
}
