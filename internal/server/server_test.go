package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/archive/storage"
	"github.com/oneee-playground/schedsim/internal/event"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type pollResult struct {
	handle string
	req    job.Request
	err    error
}

type fakePoller struct {
	results []pollResult
	done    []string
}

func (p *fakePoller) Poll(ctx context.Context) (string, job.Request, error) {
	if len(p.results) == 0 {
		return "", job.Request{}, job.NoErrEmptyRequests
	}
	r := p.results[0]
	p.results = p.results[1:]
	return r.handle, r.req, r.err
}

func (p *fakePoller) MarkAsDone(ctx context.Context, handle string) error {
	p.done = append(p.done, handle)
	return nil
}

type fakePublisher struct {
	events []event.SimulationEvent
}

func (p *fakePublisher) Publish(ctx context.Context, e event.SimulationEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fakeReportWriter struct {
	reports []sim.Report
	flushed int
}

func (w *fakeReportWriter) WriteReport(report sim.Report) { w.reports = append(w.reports, report) }
func (w *fakeReportWriter) Flush()                        { w.flushed++ }

type ServerSuite struct {
	suite.Suite

	poller    *fakePoller
	publisher *fakePublisher
	writer    *fakeReportWriter
	archive   *storage.FSStorage
	server    *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.poller = &fakePoller{}
	s.publisher = &fakePublisher{}
	s.writer = &fakeReportWriter{}
	s.archive = storage.NewFSStorage(s.T().TempDir())

	s.server = New(zap.NewNop(), ServerOpts{
		JobPoller:      s.poller,
		EventPublisher: s.publisher,
		Archive:        s.archive,
		MetricWriter:   s.writer,
	})
}

func (s *ServerSuite) TestHandleOne() {
	id := uuid.New()
	s.poller.results = []pollResult{{
		handle: "h1",
		req: job.Request{
			ID:   id,
			Jobs: []job.Job{job.New("A", 0, 3), job.New("B", 0, 2)},
		},
	}}

	s.Require().NoError(s.server.handleOne(context.Background()))

	s.Equal([]string{"h1"}, s.poller.done)

	if s.Len(s.publisher.events, 1) {
		e := s.publisher.events[0]
		s.Equal(id, e.ID)
		s.True(e.Success)
		if s.Len(e.Summaries, 2) {
			s.Equal(sched.AlgorithmFCFS, e.Summaries[0].Algorithm)
			s.Equal(5, e.Summaries[1].Makespan)
		}
	}

	s.Len(s.writer.reports, 1)
	s.Equal(1, s.writer.flushed)

	runs, err := s.archive.ListRuns(context.Background())
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{id}, runs)
}

func (s *ServerSuite) TestHandleOneEmpty() {
	err := s.server.handleOne(context.Background())

	s.ErrorIs(err, job.NoErrEmptyRequests)
	s.Empty(s.poller.done)
	s.Empty(s.publisher.events)
}

func (s *ServerSuite) TestHandleOneInvalid() {
	s.poller.results = []pollResult{{
		handle: "bad",
		err:    errors.Wrap(job.ErrInvalidDocument, "failed to decode request"),
	}}

	s.Require().NoError(s.server.handleOne(context.Background()))

	s.Equal([]string{"bad"}, s.poller.done)
	if s.Len(s.publisher.events, 1) {
		s.False(s.publisher.events[0].Success)
	}
}

func (s *ServerSuite) TestHandleOneReceiveError() {
	s.poller.results = []pollResult{{err: errors.New("network down")}}

	s.Error(s.server.handleOne(context.Background()))
	s.Empty(s.poller.done)
}

func (s *ServerSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.server.PollInterval = 1
	s.ErrorIs(s.server.Run(ctx), context.Canceled)
}
