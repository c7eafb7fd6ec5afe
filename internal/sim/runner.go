package sim

import (
	"time"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/sched"
	"go.uber.org/zap"
)

// Report is the outcome of running every algorithm over one job list.
type Report struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Jobs      []job.Job

	FCFS       sched.Result
	RoundRobin sched.Result
}

func (r Report) Results() []sched.Result {
	return []sched.Result{r.FCFS, r.RoundRobin}
}

type Runner struct {
	log *zap.Logger
	now func() time.Time
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{log: log, now: time.Now}
}

// Run simulates jobs with FCFS and then Round-Robin. Each algorithm gets its
// own copy of the jobs.
func (r *Runner) Run(id uuid.UUID, jobs []job.Job) Report {
	if id == uuid.Nil {
		id = uuid.New()
	}

	log := r.log.With(zap.String("runID", id.String()))
	log.Info("simulation started", zap.Int("jobs", len(jobs)))

	start := time.Now()

	report := Report{
		ID:        id,
		CreatedAt: r.now(),
		Jobs:      job.Clone(jobs),
	}

	report.FCFS = sched.FCFS(job.Clone(jobs))
	log.Debug("fcfs done", zap.Int("makespan", report.FCFS.Makespan))

	report.RoundRobin = sched.RoundRobin(job.Clone(jobs))
	log.Debug("round-robin done", zap.Int("makespan", report.RoundRobin.Makespan))

	if s := sched.Summarize(report.RoundRobin); s.Unfinished > 0 {
		log.Warn("round-robin left jobs unfinished", zap.Int("unfinished", s.Unfinished))
	}

	log.Info("simulation done", zap.Duration("took", time.Since(start)))

	return report
}
