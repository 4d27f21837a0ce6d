package timing

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
)

var header = []string{"run_id", "label", "num_threads", "thread_id", "start_ms", "end_ms", "duration_ms"}

// Log appends the samples of every run to a CSV file.
// The file is opened in append mode on each EndRun and closed again,
// no handle is kept between runs.
type Log struct {
	runState
	path string
}

func NewLog(path string) *Log {
	if path == "" {
		path = DefaultPath
	}
	return &Log{path: path}
}

func (l *Log) SetOutputPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.path = path
}

func (l *Log) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// EndRun writes the current run to the log. Failures are reported
// but never returned; the render result must not depend on the log.
func (l *Log) EndRun() {
	if err := l.Flush(); err != nil {
		log.Printf("thread timing: %v", err)
	}
}

// Flush appends the samples of the current run to the log file, writing the
// header first if the file is missing or empty. Nothing is written when the
// run has no samples.
func (l *Log) Flush() error {
	samples := l.snapshot()
	if len(samples) == 0 {
		return nil
	}
	path := l.Path()

	needHeader, err := isEmpty(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, s := range samples {
		if err := w.Write(s.record()); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %q: %w", path, err)
	}
	return f.Close()
}

func isEmpty(path string) (bool, error) {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
	return fi.Size() == 0, nil
}

func (s Sample) record() []string {
	return []string{
		strconv.Itoa(s.RunID),
		s.Label,
		strconv.Itoa(s.NumThreads),
		strconv.Itoa(s.ThreadID),
		formatMs(s.StartMs),
		formatMs(s.EndMs),
		formatMs(s.DurationMs),
	}
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 6, 64)
}

var _ Recorder = (*Log)(nil)
