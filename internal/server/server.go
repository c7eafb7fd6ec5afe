package server

import (
	"context"
	"time"

	"github.com/oneee-playground/schedsim/internal/archive"
	"github.com/oneee-playground/schedsim/internal/event"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/metric"
	"github.com/oneee-playground/schedsim/internal/sched"
	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ReportWriter interface {
	WriteReport(report sim.Report)
	Flush()
}

type ServerOpts struct {
	JobPoller    job.Poller
	PollInterval time.Duration

	EventPublisher event.Publisher
	Archive        archive.Storage
	MetricWriter   ReportWriter
}

type Server struct {
	log    *zap.Logger
	runner *sim.Runner

	ServerOpts
}

func New(log *zap.Logger, opts ServerOpts) *Server {
	return &Server{
		log:        log,
		runner:     sim.NewRunner(log),
		ServerOpts: opts,
	}
}

func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Server running", zap.Duration("pollInterval", s.PollInterval))

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := s.handleOne(ctx); err != nil {
			if errors.Is(err, job.NoErrEmptyRequests) {
				continue
			}
			s.log.Error("failed to handle a request", zap.Error(err))
		}
	}
}

// handleOne polls a single request and simulates it. Requests that fail
// validation are reported and removed from the queue.
func (s *Server) handleOne(ctx context.Context) error {
	handle, received, err := s.JobPoller.Poll(ctx)
	if err != nil {
		if errors.Is(err, job.ErrInvalidDocument) && handle != "" {
			metric.SimulationsTotal.WithLabelValues("invalid").Inc()
			s.publish(ctx, event.SimulationEvent{Success: false, Extra: err.Error()})
			return s.markAsDone(ctx, handle)
		}
		return err
	}

	start := time.Now()

	log := s.log.With(zap.String("requestID", received.ID.String()))
	log.Info("polled request", zap.Int("jobs", len(received.Jobs)))

	report := s.runner.Run(received.ID, received.Jobs)
	metric.Observe(report)

	if s.Archive != nil {
		if err := s.Archive.InsertReport(ctx, report); err != nil {
			metric.SimulationsTotal.WithLabelValues("failed").Inc()
			s.publish(ctx, event.SimulationEvent{ID: report.ID, Success: false, Took: time.Since(start), Extra: err.Error()})
			return errors.Wrap(err, "archiving report")
		}
	}

	if s.MetricWriter != nil {
		s.MetricWriter.WriteReport(report)
		s.MetricWriter.Flush()
	}

	summaries := make([]sched.Summary, 0, 2)
	for _, result := range report.Results() {
		summaries = append(summaries, sched.Summarize(result))
	}

	s.publish(ctx, event.SimulationEvent{
		ID:        report.ID,
		Success:   true,
		Took:      time.Since(start),
		Summaries: summaries,
	})

	metric.SimulationsTotal.WithLabelValues("ok").Inc()

	return s.markAsDone(ctx, handle)
}

func (s *Server) publish(ctx context.Context, e event.SimulationEvent) {
	if s.EventPublisher == nil {
		return
	}

	if err := s.EventPublisher.Publish(ctx, e); err != nil {
		s.log.Error("failed to publish event", zap.String("id", e.ID.String()), zap.Error(err))
	}
}

func (s *Server) markAsDone(ctx context.Context, handle string) error {
	if err := s.JobPoller.MarkAsDone(ctx, handle); err != nil {
		return errors.Wrap(err, "marking request as done")
	}
	return nil
}
