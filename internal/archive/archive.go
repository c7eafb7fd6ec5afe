// Package archive converts simulation reports into records that can be
// stored and read back independently of the simulator.
package archive

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

type Storage interface {
	InsertReport(ctx context.Context, report sim.Report) error
	ListRuns(ctx context.Context) (runIDs []uuid.UUID, err error)
	FetchHeader(ctx context.Context, runID uuid.UUID, alg sched.Algorithm) (header *structpb.Struct, err error)
	Stream(ctx context.Context, runID uuid.UUID, alg sched.Algorithm) (stream <-chan *structpb.Struct, errchan <-chan error)
}

// Slug is the on-disk name of an algorithm.
func Slug(alg sched.Algorithm) string {
	return strings.ToLower(string(alg))
}

func HeaderRecord(report sim.Report, result sched.Result) (*structpb.Struct, error) {
	s := sched.Summarize(result)

	header, err := structpb.NewStruct(map[string]interface{}{
		"runID":           report.ID.String(),
		"createdAt":       report.CreatedAt.UTC().Format(time.RFC3339Nano),
		"algorithm":       string(result.Algorithm),
		"jobs":            len(result.Outcomes),
		"makespan":        s.Makespan,
		"busyUnits":       s.BusyUnits,
		"unfinished":      s.Unfinished,
		"contextSwitches": s.ContextSwitches,
		"avgTurnaround":   s.AvgTurnaround,
		"avgWaiting":      s.AvgWaiting,
		"avgResponse":     s.AvgResponse,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building header record")
	}

	return header, nil
}

// OutcomeRecord stores the busy slots of a timeline as segments only, so the
// record size grows with the number of slices rather than the makespan.
func OutcomeRecord(o sched.Outcome) (*structpb.Struct, error) {
	segments := o.Timeline.Segments()
	segmentList := make([]interface{}, len(segments))
	for idx, seg := range segments {
		segmentList[idx] = map[string]interface{}{
			"start": seg.Start,
			"end":   seg.End,
		}
	}

	rec, err := structpb.NewStruct(map[string]interface{}{
		"name":       o.Job.Name,
		"startTime":  o.Job.StartTime,
		"duration":   o.Job.Duration,
		"segments":   segmentList,
		"finished":   o.Finished,
		"firstStart": o.FirstStart,
		"completion": o.Completion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building outcome record")
	}

	return rec, nil
}
