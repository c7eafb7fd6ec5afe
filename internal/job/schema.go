package job

import (
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidDocument = errors.New("invalid jobs document")

//go:embed jobs.schema.json
var Schema []byte

var (
	compileOnce    sync.Once
	compiledSchema *gojsonschema.Schema
	compileErr     error
)

func schema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(Schema))
		compileErr = errors.Wrap(compileErr, "compiling jobs schema")
	})
	return compiledSchema, compileErr
}

// Validate checks b against the jobs schema.
func Validate(b []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return errors.Wrapf(ErrInvalidDocument, "validating document: %v", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for idx, err := range result.Errors() {
			errs[idx] = err.String()
		}

		return errors.Wrapf(ErrInvalidDocument, "errors: %v", errs)
	}

	return nil
}

// DecodeRequest validates b and decodes it into a Request.
// Remaining time of every job is set to its duration.
func DecodeRequest(b []byte) (Request, error) {
	if err := Validate(b); err != nil {
		return Request{}, err
	}

	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		return Request{}, errors.Wrap(err, "unmarshalling request")
	}

	req.Jobs = Clone(req.Jobs)

	return req, nil
}

func LoadJSON(r io.Reader) ([]Job, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "reading jobs: %v", err)
	}

	req, err := DecodeRequest(b)
	if err != nil {
		return nil, err
	}

	return req.Jobs, nil
}

func LoadJSONFile(path string) ([]Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "opening jobs file: %v", err)
	}
	defer file.Close()

	return LoadJSON(file)
}
