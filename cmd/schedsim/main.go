package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/archive/storage"
	"github.com/oneee-playground/schedsim/internal/gantt"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = "Usage: schedsim jobs.txt"

type options struct {
	path        string
	delim       rune
	format      string
	summary     bool
	archivePath string
	verbose     bool
}

var errUsage = errors.New("missing jobs file")

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("schedsim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		_delim   = fs.String("delim", "\t", "field delimiter of the jobs file (single character)")
		_format  = fs.String("format", "text", "jobs file format: text or json")
		_summary = fs.Bool("summary", false, "print per-algorithm statistics")
		_archive = fs.String("archive", "", "directory to archive the run in")
		_verbose = fs.Bool("v", false, "debug logging to stderr")
	)

	if err := fs.Parse(args); err != nil {
		return options{}, errors.Wrap(err, "parsing flags")
	}

	if fs.NArg() < 1 {
		return options{}, errUsage
	}

	if utf8.RuneCountInString(*_delim) != 1 {
		return options{}, errors.Errorf("delimiter must be a single character, got %q", *_delim)
	}
	delim, _ := utf8.DecodeRuneInString(*_delim)

	if *_format != "text" && *_format != "json" {
		return options{}, errors.Errorf("unknown format %q", *_format)
	}

	return options{
		path:        fs.Arg(0),
		delim:       delim,
		format:      *_format,
		summary:     *_summary,
		archivePath: *_archive,
		verbose:     *_verbose,
	}, nil
}

func newLogger(verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		level,
	))
}

func run(ctx context.Context, opts options, stdout io.Writer, log *zap.Logger) error {
	var (
		jobs []job.Job
		err  error
	)

	switch opts.format {
	case "json":
		jobs, err = job.LoadJSONFile(opts.path)
	default:
		jobs, err = job.NewLoader(opts.delim, stdout, log).LoadFile(opts.path)
	}
	if err != nil {
		return errors.Wrap(err, "loading jobs")
	}

	report := sim.NewRunner(log).Run(uuid.Nil, jobs)

	w := gantt.NewWriter(stdout, opts.summary)
	for _, result := range report.Results() {
		if err := w.Write(result); err != nil {
			return errors.Wrapf(err, "writing %s chart", result.Algorithm)
		}
	}

	if opts.archivePath != "" {
		if err := storage.NewFSStorage(opts.archivePath).InsertReport(ctx, report); err != nil {
			return errors.Wrap(err, "archiving report")
		}
		log.Info("run archived", zap.String("runID", report.ID.String()), zap.String("path", opts.archivePath))
	}

	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Println(usage)
		os.Exit(2)
	}

	logger := newLogger(opts.verbose)
	defer logger.Sync()

	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}
