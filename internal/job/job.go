package job

import "github.com/google/uuid"

// Job is a unit of work for a single simulated processor.
// Only RemainingTime changes during a simulation.
type Job struct {
	Name          string `json:"name"`
	StartTime     int    `json:"startTime"`
	Duration      int    `json:"duration"`
	RemainingTime int    `json:"-"`
}

func New(name string, startTime, duration int) Job {
	return Job{
		Name:          name,
		StartTime:     startTime,
		Duration:      duration,
		RemainingTime: duration,
	}
}

func (j Job) Done() bool { return j.RemainingTime <= 0 }

// Clone returns a copy of jobs with remaining time reset to each job's duration.
func Clone(jobs []Job) []Job {
	out := make([]Job, len(jobs))
	for idx, j := range jobs {
		out[idx] = New(j.Name, j.StartTime, j.Duration)
	}
	return out
}

// Request asks a worker to simulate a job list.
type Request struct {
	ID   uuid.UUID `json:"id"`
	Jobs []Job     `json:"jobs"`
}
