// Package timing records per-worker start and end times of parallel runs
// so that load imbalance between workers can be analysed afterwards.
//
// The process-wide Recorder returned by Default writes a CSV log when the
// binary is built with the threadtiming tag and does nothing otherwise.
// Callers invoke its methods unconditionally.
package timing

import (
	"sync"
	"time"
)

// DefaultPath is where the process-wide log is written unless SetOutputPath is called.
const DefaultPath = "thread_timings.csv"

// Recorder collects timing samples of parallel runs.
// RecordSample may be called concurrently from worker goroutines.
type Recorder interface {
	SetOutputPath(path string)
	SetRunLabel(label string)
	BeginRun(numThreads int)
	RecordSample(threadID int, startSeconds, endSeconds float64)
	EndRun()
}

// Sample is one worker's share of one run. Times are in milliseconds
// since the process started.
type Sample struct {
	RunID      int     `json:"run_id"`
	Label      string  `json:"label"`
	NumThreads int     `json:"num_threads"`
	ThreadID   int     `json:"thread_id"`
	StartMs    float64 `json:"start_ms"`
	EndMs      float64 `json:"end_ms"`
	DurationMs float64 `json:"duration_ms"`
}

var epoch = time.Now()

// Seconds converts t to seconds since the process epoch, the unit RecordSample expects.
func Seconds(t time.Time) float64 {
	return t.Sub(epoch).Seconds()
}

var (
	defaultOnce     sync.Once
	defaultRecorder Recorder
)

// Default returns the process-wide Recorder, creating it on first use.
func Default() Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = newDefault()
	})
	return defaultRecorder
}

// runState is the mutable state of a run shared by Log and Memory.
type runState struct {
	mu         sync.Mutex
	label      string
	runCounter int
	runID      int
	numThreads int
	samples    []Sample
}

func (s *runState) SetRunLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

func (s *runState) BeginRun(numThreads int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = s.samples[:0]
	s.numThreads = numThreads
	s.runCounter++
	s.runID = s.runCounter
}

func (s *runState) RecordSample(threadID int, startSeconds, endSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	startMs, endMs := startSeconds*1000, endSeconds*1000
	s.samples = append(s.samples, Sample{
		RunID:      s.runID,
		NumThreads: s.numThreads,
		ThreadID:   threadID,
		StartMs:    startMs,
		EndMs:      endMs,
		DurationMs: endMs - startMs,
	})
}

// snapshot copies the current run's samples. The label is taken at the end
// of the run so a label set after BeginRun still applies.
func (s *runState) snapshot() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.samples) == 0 {
		return nil
	}
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	for i := range out {
		out[i].Label = s.label
	}
	return out
}
