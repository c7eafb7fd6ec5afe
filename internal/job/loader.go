package job

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultDelimiter = '\t'

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrUnreadableInput = errors.New("unreadable input")
)

// ParseRecord parses a single "<name><delim><start><delim><duration>" line.
// Trailing empty fields are ignored, so "A\t0\t1\t" is a valid record.
func ParseRecord(line string, delim rune) (Job, error) {
	parts := strings.Split(line, string(delim))
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) != 3 {
		return Job{}, errors.Wrapf(ErrMalformedRecord, "expected 3 fields, got %d", len(parts))
	}

	startTime, err := strconv.Atoi(parts[1])
	if err != nil {
		return Job{}, errors.Wrapf(ErrInvalidNumber, "start time %q", parts[1])
	}

	duration, err := strconv.Atoi(parts[2])
	if err != nil {
		return Job{}, errors.Wrapf(ErrInvalidNumber, "duration %q", parts[2])
	}

	if startTime < 0 || duration < 0 {
		return Job{}, errors.Wrap(ErrInvalidNumber, "negative value")
	}

	return New(parts[0], startTime, duration), nil
}

// Loader reads delimited job records. Bad lines are reported to diag and skipped.
type Loader struct {
	delim rune
	diag  io.Writer
	log   *zap.Logger
}

func NewLoader(delim rune, diag io.Writer, log *zap.Logger) *Loader {
	if diag == nil {
		diag = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{delim: delim, diag: diag, log: log}
}

func (l *Loader) LoadFile(path string) ([]Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "opening jobs file: %v", err)
	}
	defer file.Close()

	return l.Load(file)
}

func (l *Loader) Load(r io.Reader) ([]Job, error) {
	jobs := make([]Job, 0)

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(ErrUnreadableInput, "reading jobs: %v", err)
		}

		if raw != "" {
			lineNo++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

			j, perr := ParseRecord(line, l.delim)
			if perr != nil {
				l.report(lineNo, line, perr)
			} else {
				jobs = append(jobs, j)
			}
		}

		if err != nil {
			break
		}
	}

	l.log.Debug("jobs loaded", zap.Int("count", len(jobs)), zap.Int("lines", lineNo))

	return jobs, nil
}

func (l *Loader) report(lineNo int, line string, err error) {
	switch {
	case errors.Is(err, ErrInvalidNumber):
		fmt.Fprintf(l.diag, "Invalid number format in line: %s\n", line)
	default:
		fmt.Fprintf(l.diag, "Invalid job format: %s\n", line)
	}

	l.log.Warn("skipping job record",
		zap.Int("line", lineNo),
		zap.String("raw", line),
		zap.Error(err),
	)
}
