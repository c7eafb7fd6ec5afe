package sched

import (
	"github.com/oneee-playground/schedsim/internal/job"
)

// FCFS runs jobs to completion one after another in the given order.
// The processor idles until a job's start time when it has not arrived yet.
// Remaining time of the jobs is neither read nor modified.
func FCFS(jobs []job.Job) Result {
	result := Result{
		Algorithm: AlgorithmFCFS,
		Outcomes:  make([]Outcome, len(jobs)),
	}

	current := 0
	for idx, j := range jobs {
		start := max(current, j.StartTime)
		end := start + j.Duration

		timeline := make(Timeline, 0, end).padTo(start)
		for len(timeline) < end {
			timeline = append(timeline, Busy)
		}

		result.Outcomes[idx] = Outcome{
			Job:        j,
			Timeline:   timeline,
			Finished:   true,
			FirstStart: start,
			Completion: end,
		}

		current = end
	}

	result.Makespan = current

	return result
}
