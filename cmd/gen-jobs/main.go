package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/pkg/errors"
	"github.com/ryanolee/go-chaff"
)

//go:embed job.schema.json
var defaultSchema []byte

var (
	num        int
	outPath    string
	delim      string
	jobSchema  []byte
	keepNames  bool
	allAtStart bool
)

func processParameters() {
	var (
		_num        = flag.Int("n", 5, "number of generated jobs")
		_schemaPath = flag.String("schema", "", "job schema file path (defaults to the built-in one)")
		_outPath    = flag.String("out", "", "output file path (defaults to stdout)")
		_delim      = flag.String("delim", "\t", "field delimiter")
		_keepNames  = flag.Bool("keep-names", false, "keep generated names instead of A, B, C...")
		_allAtStart = flag.Bool("zero", false, "make every job start at 0")
	)

	flag.Parse()

	num = *_num
	outPath = *_outPath
	delim = *_delim
	keepNames = *_keepNames
	allAtStart = *_allAtStart

	jobSchema = defaultSchema
	if *_schemaPath != "" {
		file, err := os.Open(*_schemaPath)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()

		b, err := io.ReadAll(file)
		if err != nil {
			log.Fatal(err)
		}

		jobSchema = b
	}
}

// jobName returns A..Z, then A1..Z1 and so on.
func jobName(idx int) string {
	name := string(rune('A' + idx%26))
	if round := idx / 26; round > 0 {
		name += strconv.Itoa(round)
	}
	return name
}

func generate(generator chaff.Generator, n int) ([]job.Job, error) {
	jobs := make([]job.Job, 0, n)
	for i := 0; i < n; i++ {
		result := generator.Generate(&chaff.GeneratorOptions{})

		b, err := json.Marshal(map[string]interface{}{"jobs": []interface{}{result}})
		if err != nil {
			return nil, errors.Wrap(err, "marshalling generated job")
		}

		req, err := job.DecodeRequest(b)
		if err != nil {
			return nil, errors.Wrap(err, "generated job does not fit the jobs schema")
		}

		j := req.Jobs[0]
		if !keepNames {
			j.Name = jobName(i)
		}
		if allAtStart {
			j.StartTime = 0
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}

func format(jobs []job.Job, delim string) string {
	var b strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&b, "%s%s%d%s%d\n", j.Name, delim, j.StartTime, delim, j.Duration)
	}
	return b.String()
}

func main() {
	processParameters()

	generator, err := chaff.ParseSchema(jobSchema, &chaff.ParserOptions{})
	if err != nil {
		log.Fatal(err)
	}

	jobs, err := generate(generator, num)
	if err != nil {
		log.Fatal(err)
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()

		out = file
	}

	if _, err := io.WriteString(out, format(jobs, delim)); err != nil {
		log.Fatal(err)
	}
}
