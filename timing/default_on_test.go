//go:build threadtiming

package timing

import (
	"path/filepath"
	"testing"
)

func TestDefault_EnabledIsLog(t *testing.T) {
	l, ok := Default().(*Log)
	if !ok {
		t.Fatalf("Default() = %T, want *Log", Default())
	}
	if Default() != Recorder(l) {
		t.Fatal("Default() returned a different instance")
	}

	path := filepath.Join(t.TempDir(), "default.csv")
	l.SetOutputPath(path)
	recordRun(l, 2)

	samples, err := ReadLogFile(path)
	requireNoError(t, err)
	if len(samples) != 2 {
		t.Errorf("got %d samples, want 2", len(samples))
	}
}
