package sched

import (
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Algorithm  Algorithm `json:"algorithm"`
	Makespan   int       `json:"makespan"`
	BusyUnits  int       `json:"busyUnits"`
	Finished   int       `json:"finished"`
	Unfinished int       `json:"unfinished"`

	AvgTurnaround float64 `json:"avgTurnaround"`
	AvgWaiting    float64 `json:"avgWaiting"`
	AvgResponse   float64 `json:"avgResponse"`

	ContextSwitches int `json:"contextSwitches"`
}

// Summarize aggregates per-job statistics. Averages only cover finished jobs.
func Summarize(r Result) Summary {
	var turnaround, waiting, response []float64
	for _, o := range r.Outcomes {
		if !o.Finished {
			continue
		}
		turnaround = append(turnaround, float64(o.Turnaround()))
		waiting = append(waiting, float64(o.Waiting()))
		response = append(response, float64(o.Response()))
	}

	return Summary{
		Algorithm:       r.Algorithm,
		Makespan:        r.Makespan,
		BusyUnits:       r.BusyUnits(),
		Finished:        len(turnaround),
		Unfinished:      len(r.Outcomes) - len(turnaround),
		AvgTurnaround:   mean(turnaround),
		AvgWaiting:      mean(waiting),
		AvgResponse:     mean(response),
		ContextSwitches: r.ContextSwitches(),
	}
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
