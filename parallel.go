package mandel

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marben/mandel_threads/timing"
)

// Parallel renders the image with a fixed number of worker goroutines,
// started for each Render call and joined before it returns.
//
// Each worker owns one Assignment and writes only through Buffer.Row for
// the rows it owns. Assignments are disjoint, so pixel writes need no locking.
type Parallel struct {
	Threads int
	Policy  Policy

	// Recorder receives one sample per worker per run. A run whose worker
	// failed is never ended, so its partial samples are dropped by the next
	// BeginRun. nil means timing.Default().
	Recorder timing.Recorder
}

func (p Parallel) Render(v View, maxIterations int) (Result, error) {
	if err := validate(v, maxIterations); err != nil {
		return Result{}, err
	}
	assignments, err := Partition(v.Height, p.Threads, p.Policy)
	if err != nil {
		return Result{}, err
	}

	rec := p.Recorder
	if rec == nil {
		rec = timing.Default()
	}

	buf := NewBuffer(v.Width, v.Height)

	rec.BeginRun(p.Threads)

	var g errgroup.Group
	start := time.Now()
	for _, a := range assignments {
		a := a
		g.Go(func() error {
			return work(v, a, buf, maxIterations, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)
	rec.EndRun()

	return Result{Buffer: buf, Elapsed: elapsed}, nil
}

// work renders the rows of one assignment.
func work(v View, a Assignment, buf *Buffer, maxIterations int, rec timing.Recorder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: thread %d: %v", ErrWorkerFailed, a.Thread, r)
		}
	}()

	start := time.Now()
	a.Rows(func(y int) {
		renderRow(v, y, buf.Row(y), maxIterations)
	})
	end := time.Now()

	rec.RecordSample(a.Thread, timing.Seconds(start), timing.Seconds(end))
	return nil
}

var _ Renderer = Parallel{}
