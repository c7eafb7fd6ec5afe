package sched

import (
	"github.com/oneee-playground/schedsim/internal/job"
)

// Quantum is the number of time units a job runs before it is preempted.
const Quantum = 1

// readyQueue is a FIFO of load-order indices that knows which jobs it holds.
type readyQueue struct {
	items  []int
	queued []int
}

func newReadyQueue(n int) *readyQueue {
	return &readyQueue{
		items:  make([]int, 0, n),
		queued: make([]int, n),
	}
}

func (q *readyQueue) push(idx int) {
	q.items = append(q.items, idx)
	q.queued[idx]++
}

func (q *readyQueue) pop() int {
	idx := q.items[0]
	q.items = q.items[1:]
	q.queued[idx]--
	return idx
}

func (q *readyQueue) contains(idx int) bool { return q.queued[idx] > 0 }
func (q *readyQueue) empty() bool           { return len(q.items) == 0 }

// RoundRobin simulates preemptive round-robin scheduling with a quantum of one
// time unit. It works on its own copy of jobs, so the caller's remaining time
// counters are left untouched.
//
// Jobs whose start time is 0 are ready from the beginning. Any other job is
// admitted only at the tick that equals its start time; a job arriving while
// the ready queue is empty is never admitted and stays idle.
func RoundRobin(jobs []job.Job) Result {
	jobs = job.Clone(jobs)

	outcomes := make([]Outcome, len(jobs))
	for idx, j := range jobs {
		outcomes[idx] = Outcome{Job: j, Timeline: make(Timeline, 0)}
	}

	arrivals := make(map[int][]int)
	for idx, j := range jobs {
		arrivals[j.StartTime] = append(arrivals[j.StartTime], idx)
	}

	current := 0
	queue := newReadyQueue(len(jobs))
	for idx, j := range jobs {
		if j.StartTime <= current {
			queue.push(idx)
		}
	}

	for !queue.empty() {
		idx := queue.pop()
		j := &jobs[idx]

		if current < j.StartTime {
			current = j.StartTime
		}

		executed := false
		if !j.Done() {
			o := &outcomes[idx]
			if j.RemainingTime == j.Duration {
				o.FirstStart = current
			}

			o.Timeline = append(o.Timeline.padTo(current), Busy)
			j.RemainingTime -= Quantum
			current += Quantum
			executed = true

			if j.Done() {
				o.Finished = true
				o.Completion = current
			}
		}

		for _, arrived := range arrivals[current] {
			if !queue.contains(arrived) {
				queue.push(arrived)
			}
		}

		if !j.Done() {
			queue.push(idx)
		}

		if !executed {
			current++
		}

		for i := range outcomes {
			outcomes[i].Timeline = outcomes[i].Timeline.padTo(current)
		}
	}

	for idx, j := range jobs {
		if j.Duration == 0 {
			outcomes[idx].Finished = true
			outcomes[idx].FirstStart = j.StartTime
			outcomes[idx].Completion = j.StartTime
		}
	}

	return Result{
		Algorithm: AlgorithmRoundRobin,
		Outcomes:  outcomes,
		Makespan:  current,
	}
}
