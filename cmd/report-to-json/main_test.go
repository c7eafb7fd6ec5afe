package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/archive/storage"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestDrain(t *testing.T) {
	errFailed := errors.New("decoding outcome")

	testcases := []struct {
		desc    string
		records int
		err     error
	}{
		{desc: "records only", records: 2},
		{desc: "error buffered before close", records: 1, err: errFailed},
		{desc: "error without records", err: errFailed},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			stream := make(chan *structpb.Struct, tc.records)
			errchan := make(chan error, 1)

			for i := 0; i < tc.records; i++ {
				stream <- new(structpb.Struct)
			}
			if tc.err != nil {
				errchan <- tc.err
			}
			close(stream)

			emitted := 0
			err := drain(stream, errchan, func(*structpb.Struct) { emitted++ })

			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.LessOrEqual(t, emitted, tc.records)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.records, emitted)
		})
	}
}

func TestDrainArchive(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := storage.NewFSStorage(t.TempDir())
	report := sim.NewRunner(zap.NewNop()).Run(uuid.New(), []job.Job{job.New("A", 0, 3), job.New("B", 1, 2)})
	require.NoError(t, fs.InsertReport(context.Background(), report))

	names := make([]string, 0)
	stream, errchan := fs.Stream(context.Background(), report.ID, sched.AlgorithmFCFS)
	err := drain(stream, errchan, func(rec *structpb.Struct) {
		names = append(names, rec.Fields["name"].GetStringValue())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)

	stream, errchan = fs.Stream(context.Background(), uuid.New(), sched.AlgorithmFCFS)
	assert.Error(t, drain(stream, errchan, func(*structpb.Struct) {}))
}
