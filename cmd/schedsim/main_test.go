package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oneee-playground/schedsim/internal/archive/storage"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseOptions(t *testing.T) {
	testcases := []struct {
		desc    string
		args    []string
		wantErr bool
		check   func(t *testing.T, opts options)
	}{
		{
			desc:    "no arguments",
			args:    []string{},
			wantErr: true,
		},
		{
			desc: "defaults",
			args: []string{"jobs.txt"},
			check: func(t *testing.T, opts options) {
				assert.Equal(t, "jobs.txt", opts.path)
				assert.Equal(t, '\t', opts.delim)
				assert.Equal(t, "text", opts.format)
			},
		},
		{
			desc: "custom delimiter",
			args: []string{"-delim", ",", "-summary", "jobs.csv"},
			check: func(t *testing.T, opts options) {
				assert.Equal(t, ',', opts.delim)
				assert.True(t, opts.summary)
			},
		},
		{
			desc:    "multi-character delimiter",
			args:    []string{"-delim", "::", "jobs.txt"},
			wantErr: true,
		},
		{
			desc:    "unknown format",
			args:    []string{"-format", "yaml", "jobs.txt"},
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			opts, err := parseOptions(tc.args)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tc.check(t, opts)
		})
	}
}

func TestParseOptionsUsage(t *testing.T) {
	_, err := parseOptions(nil)
	assert.True(t, errors.Is(err, errUsage))
}

func TestRun(t *testing.T) {
	path := writeFile(t, "jobs.txt", "A\t0\t3\nA\t1\nB\tX\t3\nB\t0\t2\n")

	stdout := new(bytes.Buffer)
	opts := options{path: path, delim: '\t', format: "text"}

	require.NoError(t, run(context.Background(), opts, stdout, zap.NewNop()))

	expected := strings.Join([]string{
		"Invalid job format: A\t1",
		"Invalid number format in line: B\tX\t3",
		"FCFS",
		"A  XXX",
		"B     XX",
		"Round-Robin",
		"A X X X",
		"B  X X ",
	}, "\n") + "\n"

	assert.Equal(t, expected, stdout.String())
}

func TestRunEmptyFile(t *testing.T) {
	path := writeFile(t, "jobs.txt", "")

	stdout := new(bytes.Buffer)
	require.NoError(t, run(context.Background(), options{path: path, delim: '\t', format: "text"}, stdout, zap.NewNop()))

	assert.Equal(t, "FCFS\nRound-Robin\n", stdout.String())
}

func TestRunJSON(t *testing.T) {
	path := writeFile(t, "jobs.json", `{"jobs":[{"name":"A","startTime":0,"duration":2},{"name":"B","startTime":1,"duration":2}]}`)

	stdout := new(bytes.Buffer)
	require.NoError(t, run(context.Background(), options{path: path, format: "json"}, stdout, zap.NewNop()))

	assert.Equal(t, "FCFS\nA  XX\nB    XX\nRound-Robin\nA X X \nB  X X\n", stdout.String())
}

func TestRunMissingFile(t *testing.T) {
	opts := options{path: filepath.Join(t.TempDir(), "missing.txt"), delim: '\t', format: "text"}

	err := run(context.Background(), opts, new(bytes.Buffer), zap.NewNop())
	assert.True(t, errors.Is(err, job.ErrUnreadableInput))
}

func TestRunArchive(t *testing.T) {
	path := writeFile(t, "jobs.txt", "A\t0\t1\n")
	archiveDir := t.TempDir()

	opts := options{path: path, delim: '\t', format: "text", archivePath: archiveDir}
	require.NoError(t, run(context.Background(), opts, new(bytes.Buffer), zap.NewNop()))

	runs, err := storage.NewFSStorage(archiveDir).ListRuns(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
