// Package gantt prints simulation results as text timelines.
package gantt

import (
	"fmt"
	"io"
	"strings"

	"github.com/oneee-playground/schedsim/internal/sched"
)

// Writer renders results to an output stream.
type Writer struct {
	out     io.Writer
	summary bool
}

func NewWriter(out io.Writer, withSummary bool) *Writer {
	return &Writer{out: out, summary: withSummary}
}

// Write prints the label line of the algorithm followed by one line per job.
func (w *Writer) Write(r sched.Result) error {
	var b strings.Builder

	b.WriteString(string(r.Algorithm))
	b.WriteByte('\n')

	for _, o := range r.Outcomes {
		b.WriteString(Line(r.Algorithm, o))
		b.WriteByte('\n')
	}

	if w.summary {
		b.WriteString(SummaryLine(sched.Summarize(r)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w.out, b.String())
	return err
}

// Line renders one job. FCFS lines separate the name with two spaces and stop
// at the job's completion; Round-Robin lines use one space and span the whole
// makespan.
func Line(alg sched.Algorithm, o sched.Outcome) string {
	sep := " "
	if alg == sched.AlgorithmFCFS {
		sep = "  "
	}
	return o.Job.Name + sep + o.Timeline.String()
}

func SummaryLine(s sched.Summary) string {
	return fmt.Sprintf(
		"# makespan=%d busy=%d unfinished=%d switches=%d avg-turnaround=%.2f avg-waiting=%.2f avg-response=%.2f",
		s.Makespan, s.BusyUnits, s.Unfinished, s.ContextSwitches,
		s.AvgTurnaround, s.AvgWaiting, s.AvgResponse,
	)
}
