package main

import (
	"strings"
	"testing"

	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/ryanolee/go-chaff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobName(t *testing.T) {
	assert.Equal(t, "A", jobName(0))
	assert.Equal(t, "Z", jobName(25))
	assert.Equal(t, "A1", jobName(26))
	assert.Equal(t, "C2", jobName(54))
}

func TestGenerate(t *testing.T) {
	generator, err := chaff.ParseSchema(defaultSchema, &chaff.ParserOptions{})
	require.NoError(t, err)

	jobs, err := generate(generator, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 10)

	for idx, j := range jobs {
		assert.Equal(t, jobName(idx), j.Name)
		assert.GreaterOrEqual(t, j.StartTime, 0)
		assert.GreaterOrEqual(t, j.Duration, 1)
	}

	// output must load back without diagnostics
	diag := new(strings.Builder)
	loaded, err := job.NewLoader(job.DefaultDelimiter, diag, nil).Load(strings.NewReader(format(jobs, "\t")))
	require.NoError(t, err)

	assert.Equal(t, jobs, loaded)
	assert.Empty(t, diag.String())
}
