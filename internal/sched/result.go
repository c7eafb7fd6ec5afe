package sched

import (
	"github.com/oneee-playground/schedsim/internal/job"
)

type Algorithm string

const (
	AlgorithmFCFS       Algorithm = "FCFS"
	AlgorithmRoundRobin Algorithm = "Round-Robin"
)

type Mark byte

const (
	Idle Mark = ' '
	Busy Mark = 'X'
)

// Timeline holds one mark per time unit, indexed by absolute time.
type Timeline []Mark

func (t Timeline) String() string {
	b := make([]byte, len(t))
	for idx, m := range t {
		b[idx] = byte(m)
	}
	return string(b)
}

func (t Timeline) BusyUnits() int {
	cnt := 0
	for _, m := range t {
		if m == Busy {
			cnt++
		}
	}
	return cnt
}

// padTo extends t with idle marks until it is n units long.
func (t Timeline) padTo(n int) Timeline {
	for len(t) < n {
		t = append(t, Idle)
	}
	return t
}

// Segment is a busy interval [Start, End).
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (t Timeline) Segments() []Segment {
	segments := make([]Segment, 0)
	for idx := 0; idx < len(t); idx++ {
		if t[idx] != Busy {
			continue
		}

		start := idx
		for idx < len(t) && t[idx] == Busy {
			idx++
		}
		segments = append(segments, Segment{Start: start, End: idx})
	}
	return segments
}

// Outcome is what happened to a single job during a simulation.
type Outcome struct {
	Job      job.Job
	Timeline Timeline

	// Finished is false when the job never got all of its processing time.
	Finished   bool
	FirstStart int
	Completion int
}

func (o Outcome) Turnaround() int { return o.Completion - o.Job.StartTime }
func (o Outcome) Waiting() int    { return o.Turnaround() - o.Job.Duration }
func (o Outcome) Response() int   { return o.FirstStart - o.Job.StartTime }

type Result struct {
	Algorithm Algorithm
	Outcomes  []Outcome
	Makespan  int
}

func (r Result) BusyUnits() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.Timeline.BusyUnits()
	}
	return total
}

// ContextSwitches counts how many times the processor moved from one job to
// a different one. Idle gaps between two slices of the same job do not count.
func (r Result) ContextSwitches() int {
	owners := make([]int, r.Makespan)
	for idx := range owners {
		owners[idx] = -1
	}

	for jobIdx, o := range r.Outcomes {
		for t, m := range o.Timeline {
			if m == Busy && t < len(owners) {
				owners[t] = jobIdx
			}
		}
	}

	switches := 0
	last := -1
	for _, owner := range owners {
		if owner == -1 {
			continue
		}
		if last != -1 && owner != last {
			switches++
		}
		last = owner
	}
	return switches
}
