package metric

import (
	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api/write"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
)

const (
	MeasurementOutcome = "job-outcome"
	MeasurementSummary = "algorithm-summary"
)

type Storage struct {
	client influxdb2.Client
}

func NewStorage(client influxdb2.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) WriteSession(org, bucket string) (*WriteSession, <-chan error) {
	writer := s.client.WriteAPI(org, bucket)
	return NewWriteSession(writer), writer.Errors()
}

func (s *Storage) Close() {
	s.client.Close()
}

// PointWriter is satisfied by the InfluxDB non-blocking write API.
type PointWriter interface {
	WritePoint(point *write.Point)
	Flush()
}

type WriteSession struct {
	writer PointWriter
}

func NewWriteSession(writer PointWriter) *WriteSession {
	return &WriteSession{writer: writer}
}

func (ws *WriteSession) Write(point *write.Point) {
	ws.writer.WritePoint(point)
}

// WriteReport writes one point per job and one summary point per algorithm,
// all stamped with the report's creation time.
func (ws *WriteSession) WriteReport(report sim.Report) {
	for _, result := range report.Results() {
		for _, p := range Points(report, result) {
			ws.writer.WritePoint(p)
		}
	}
}

func (ws *WriteSession) Flush() {
	ws.writer.Flush()
}

func Points(report sim.Report, result sched.Result) []*write.Point {
	points := make([]*write.Point, 0, len(result.Outcomes)+1)

	for _, o := range result.Outcomes {
		tags := map[string]string{
			"run-id":    report.ID.String(),
			"algorithm": string(result.Algorithm),
			"job":       o.Job.Name,
		}

		fields := map[string]interface{}{
			"start-time": o.Job.StartTime,
			"duration":   o.Job.Duration,
			"busy":       o.Timeline.BusyUnits(),
			"finished":   o.Finished,
		}

		if o.Finished {
			fields["first-start"] = o.FirstStart
			fields["completion"] = o.Completion
			fields["turnaround"] = o.Turnaround()
			fields["waiting"] = o.Waiting()
			fields["response"] = o.Response()
		}

		points = append(points, write.NewPoint(MeasurementOutcome, tags, fields, report.CreatedAt))
	}

	s := sched.Summarize(result)
	points = append(points, write.NewPoint(
		MeasurementSummary,
		map[string]string{
			"run-id":    report.ID.String(),
			"algorithm": string(result.Algorithm),
		},
		map[string]interface{}{
			"makespan":         s.Makespan,
			"busy":             s.BusyUnits,
			"unfinished":       s.Unfinished,
			"context-switches": s.ContextSwitches,
			"avg-turnaround":   s.AvgTurnaround,
			"avg-waiting":      s.AvgWaiting,
			"avg-response":     s.AvgResponse,
		},
		report.CreatedAt,
	))

	return points
}
