package mandel

import (
	"errors"
	"math"
	"path/filepath"
	"slices"
	"testing"

	"github.com/marben/mandel_threads/timing"
)

var classic = View{OriginReal: -2, OriginImag: -1.2, SpanX: 3, SpanY: 2.4, Width: 100, Height: 100}

func render(t *testing.T, r Renderer, v View, maxIter int) *Buffer {
	t.Helper()
	res, err := r.Render(v, maxIter)
	if err != nil {
		t.Fatalf("%T.Render: %v", r, err)
	}
	if res.Buffer == nil || len(res.Buffer.Counts) != v.Pixels() {
		t.Fatalf("%T.Render: buffer %+v", r, res.Buffer)
	}
	return res.Buffer
}

func TestSerial_Deterministic(t *testing.T) {
	a := render(t, Serial{}, classic, 256)
	b := render(t, Serial{}, classic, 256)
	if !slices.Equal(a.Counts, b.Counts) {
		t.Fatal("two serial runs differ")
	}
	if &a.Counts[0] == &b.Counts[0] {
		t.Fatal("serial runs share a buffer")
	}
}

func TestParallel_MatchesSerialForAnyThreadCount(t *testing.T) {
	views := map[string]View{
		"classic":    classic,
		"wide":       classic.Resize(131, 17),
		"single row": classic.Resize(40, 1),
		"zoom":       ViewFromBounds(-2, 1, -1, 1, 64, 48).Scale(0.015, -0.986, 0.30),
	}
	for name, v := range views {
		want := render(t, Serial{}, v, 256)
		for _, policy := range []Policy{Block, Interleaved} {
			for _, threads := range []int{1, 2, 3, 7, 16, 100, 250} {
				p := Parallel{Threads: threads, Policy: policy, Recorder: timing.Nop{}}
				got := render(t, p, v, 256)
				if err := Verify(want, got); err != nil {
					t.Errorf("%s/%v/%d threads: %v", name, policy, threads, err)
				}
			}
		}
	}
}

func TestParallel_ClassicScenario(t *testing.T) {
	const maxIter = 256
	serial := render(t, Serial{}, classic, maxIter)
	parallel := render(t, Parallel{Threads: 4, Recorder: timing.Nop{}}, classic, maxIter)

	if err := Verify(serial, parallel); err != nil {
		t.Fatal(err)
	}
	if got := parallel.Counts[0]; got > 5 {
		t.Errorf("top-left pixel took %d iterations, expected to diverge quickly", got)
	}
	center := parallel.Index(classic.Width/2, classic.Height/2)
	if got := parallel.Counts[center]; got != maxIter {
		t.Errorf("center pixel = %d, want %d", got, maxIter)
	}
	for i, c := range parallel.Counts {
		if c < 0 || c > maxIter {
			t.Fatalf("pixel %d = %d out of range", i, c)
		}
	}
}

func TestParallel_RecordsOneSamplePerWorker(t *testing.T) {
	rec := timing.NewMemory()
	rec.SetRunLabel("test")
	p := Parallel{Threads: 5, Policy: Interleaved, Recorder: rec}
	render(t, p, classic, 64)
	render(t, p, classic, 64)

	samples := rec.Samples()
	if len(samples) != 10 {
		t.Fatalf("got %d samples, want 10", len(samples))
	}
	threads := make(map[[2]int]bool)
	for _, s := range samples {
		if s.NumThreads != 5 || s.Label != "test" {
			t.Errorf("sample %+v", s)
		}
		if s.EndMs < s.StartMs {
			t.Errorf("sample ends before it starts: %+v", s)
		}
		threads[[2]int{s.RunID, s.ThreadID}] = true
	}
	if len(threads) != 10 {
		t.Errorf("got %d distinct (run, thread) pairs, want 10", len(threads))
	}
}

func TestParallel_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		p       Parallel
		v       View
		maxIter int
		want    error
	}{
		{"zero threads", Parallel{Threads: 0}, classic, 10, ErrInvalidThreads},
		{"negative threads", Parallel{Threads: -3}, classic, 10, ErrInvalidThreads},
		{"empty view", Parallel{Threads: 2}, classic.Resize(0, 0), 10, ErrInvalidView},
		{"zero iterations", Parallel{Threads: 2}, classic, 0, ErrInvalidIterations},
		{"bad policy", Parallel{Threads: 2, Policy: Policy(7)}, classic, 10, ErrInvalidPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := timing.NewMemory()
			tt.p.Recorder = rec
			res, err := tt.p.Render(tt.v, tt.maxIter)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if res.Buffer != nil {
				t.Error("buffer returned on configuration error")
			}
			if len(rec.Samples()) != 0 {
				t.Error("samples recorded on configuration error")
			}
		})
	}
}

func TestSerial_ConfigErrors(t *testing.T) {
	if _, err := (Serial{}).Render(classic.Resize(10, 0), 10); !errors.Is(err, ErrInvalidView) {
		t.Errorf("err = %v, want ErrInvalidView", err)
	}
	if _, err := (Serial{}).Render(classic, -1); !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("err = %v, want ErrInvalidIterations", err)
	}
}

type panicRecorder struct{ timing.Nop }

func (panicRecorder) RecordSample(int, float64, float64) { panic("boom") }

func TestParallel_WorkerFailureFailsRun(t *testing.T) {
	_, err := Parallel{Threads: 3, Recorder: panicRecorder{}}.Render(classic, 8)
	if !errors.Is(err, ErrWorkerFailed) {
		t.Fatalf("err = %v, want ErrWorkerFailed", err)
	}
}

// failingRecorder keeps samples in memory but panics when the given thread reports.
type failingRecorder struct {
	*timing.Memory
	thread int
}

func (r failingRecorder) RecordSample(thread int, start, end float64) {
	if thread == r.thread {
		panic("boom")
	}
	r.Memory.RecordSample(thread, start, end)
}

func TestParallel_FailedRunRecordsNothing(t *testing.T) {
	rec := failingRecorder{Memory: timing.NewMemory(), thread: 2}
	if _, err := (Parallel{Threads: 4, Recorder: rec}).Render(classic, 8); !errors.Is(err, ErrWorkerFailed) {
		t.Fatalf("err = %v, want ErrWorkerFailed", err)
	}
	if got := rec.Samples(); len(got) != 0 {
		t.Fatalf("failed run left %d samples: %+v", len(got), got)
	}

	rec.thread = -1
	render(t, Parallel{Threads: 4, Recorder: rec}, classic, 8)
	got := rec.Samples()
	if len(got) != 4 {
		t.Fatalf("got %d samples, want 4", len(got))
	}
	for _, s := range got {
		if s.RunID != 2 {
			t.Errorf("sample %+v, want run 2", s)
		}
	}
}

func TestParallel_TimingLogFailureKeepsResult(t *testing.T) {
	rec := timing.NewLog(filepath.Join(t.TempDir(), "missing", "timings.csv"))
	res, err := Parallel{Threads: 3, Recorder: rec}.Render(classic, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Buffer == nil {
		t.Fatal("no buffer")
	}
	if err := Verify(render(t, Serial{}, classic, 64), res.Buffer); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestSerial_RejectsOverflowingSize(t *testing.T) {
	v := classic.Resize(math.MaxInt/2+1, 4)
	if _, err := (Serial{}).Render(v, 8); !errors.Is(err, ErrInvalidView) {
		t.Fatalf("err = %v, want ErrInvalidView", err)
	}
}

func BenchmarkSerial(b *testing.B) {
	v := classic.Resize(200, 150)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := (Serial{}).Render(v, 256); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParallel(b *testing.B) {
	v := classic.Resize(200, 150)
	for _, policy := range []Policy{Block, Interleaved} {
		b.Run(policy.String(), func(b *testing.B) {
			p := Parallel{Threads: 8, Policy: policy, Recorder: timing.Nop{}}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.Render(v, 256); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
