// Package report formats comparison results and analyses timing logs.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	mandel "github.com/marben/mandel_threads"
	"github.com/marben/mandel_threads/timing"
)

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// The lines below are parsed by the speedup plotting script; keep the format.

func SerialLine(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "[mandelbrot serial]:\t\t[%.3f] ms\n", Millis(d))
}

func ThreadLine(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "[mandelbrot thread]:\t\t[%.3f] ms\n", Millis(d))
}

func SpeedupLine(w io.Writer, speedup float64, threads int) {
	fmt.Fprintf(w, "\t\t\t\t(%.2fx speedup from %d threads)\n", speedup, threads)
}

func WroteLine(w io.Writer, path string) {
	fmt.Fprintf(w, "Wrote image file %s\n", path)
}

// Summary is the machine readable form of a comparison.
type Summary struct {
	View       string          `json:"view,omitempty"`
	Iterations int             `json:"iterations"`
	Threads    int             `json:"threads"`
	Policy     string          `json:"policy"`
	SerialMs   float64         `json:"serial_ms"`
	ThreadMs   float64         `json:"thread_ms"`
	Speedup    float64         `json:"speedup"`
	Verified   bool            `json:"verified"`
	Mismatch   *Mismatch       `json:"mismatch,omitempty"`
	Samples    []timing.Sample `json:"samples,omitempty"`
}

type Mismatch struct {
	Index    int `json:"index"`
	X        int `json:"x"`
	Y        int `json:"y"`
	Serial   int `json:"serial"`
	Parallel int `json:"parallel"`
	Count    int `json:"count"`
}

func NewSummary(c *mandel.Comparison, maxIterations int, policy mandel.Policy) Summary {
	s := Summary{
		Iterations: maxIterations,
		Threads:    c.Threads,
		Policy:     policy.String(),
		SerialMs:   Millis(c.Serial.Elapsed),
		ThreadMs:   Millis(c.Parallel.Elapsed),
		Speedup:    c.Speedup(),
		Verified:   c.Err == nil,
	}
	var m *mandel.MismatchError
	if errors.As(c.Err, &m) {
		s.Mismatch = &Mismatch{Index: m.Index, X: m.X, Y: m.Y, Serial: m.Serial, Parallel: m.Parallel, Count: m.Count}
	}
	return s
}

// WriteJSON writes s as one JSON document followed by a newline.
func WriteJSON(w io.Writer, s Summary) error {
	data, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
