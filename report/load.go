package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/marben/mandel_threads/timing"
)

// ThreadLoad is the time one worker spent in one run.
type ThreadLoad struct {
	ThreadID   int
	DurationMs float64
}

// Load describes how evenly the work of one run was spread over its workers.
type Load struct {
	RunID   int
	Label   string
	Threads []ThreadLoad
	MeanMs  float64
	MaxMs   float64
}

// Imbalance is the slowest worker's time over the mean; 1 is perfect balance.
func (l Load) Imbalance() float64 {
	if l.MeanMs == 0 {
		return 0
	}
	return l.MaxMs / l.MeanMs
}

type SortOrder string

const (
	ByDuration SortOrder = "duration"
	ByThread   SortOrder = "thread"
)

// PickRun selects the samples of runID, or of the highest run id when runID <= 0.
func PickRun(samples []timing.Sample, runID int) ([]timing.Sample, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	if runID <= 0 {
		for _, s := range samples {
			runID = max(runID, s.RunID)
		}
	}

	var out []timing.Sample
	for _, s := range samples {
		if s.RunID == runID {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("run_id %d not present, available: %v", runID, runIDs(samples))
	}
	slices.SortFunc(out, func(a, b timing.Sample) int { return cmp.Compare(a.ThreadID, b.ThreadID) })
	return out, nil
}

func runIDs(samples []timing.Sample) []int {
	var ids []int
	for _, s := range samples {
		ids = append(ids, s.RunID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Analyze builds the load of one run. All samples must belong to the same run.
func Analyze(run []timing.Sample, order SortOrder) (Load, error) {
	if len(run) == 0 {
		return Load{}, fmt.Errorf("no samples")
	}
	l := Load{RunID: run[0].RunID, Label: run[0].Label}
	var sum float64
	for _, s := range run {
		l.Threads = append(l.Threads, ThreadLoad{ThreadID: s.ThreadID, DurationMs: s.DurationMs})
		sum += s.DurationMs
		l.MaxMs = max(l.MaxMs, s.DurationMs)
	}
	l.MeanMs = sum / float64(len(run))

	switch order {
	case ByDuration, "":
		slices.SortStableFunc(l.Threads, func(a, b ThreadLoad) int { return cmp.Compare(b.DurationMs, a.DurationMs) })
	case ByThread:
		slices.SortStableFunc(l.Threads, func(a, b ThreadLoad) int { return cmp.Compare(a.ThreadID, b.ThreadID) })
	default:
		return Load{}, fmt.Errorf("unknown sort order %q", order)
	}
	return l, nil
}

const barWidth = 50

// WriteLoad prints one bar per worker, scaled to the slowest worker.
func WriteLoad(w io.Writer, l Load) {
	fmt.Fprintf(w, "Thread runtime distribution (run %d)\n", l.RunID)
	if l.Label != "" {
		fmt.Fprintln(w, l.Label)
	}
	for _, t := range l.Threads {
		n := 0
		if l.MaxMs > 0 {
			n = int(t.DurationMs / l.MaxMs * barWidth)
		}
		fmt.Fprintf(w, "T%-3d %-*s %.2f ms\n", t.ThreadID, barWidth, strings.Repeat("#", n), t.DurationMs)
	}
	fmt.Fprintf(w, "mean %.2f ms, max %.2f ms, imbalance %.2fx\n", l.MeanMs, l.MaxMs, l.Imbalance())
}
