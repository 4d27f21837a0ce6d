//go:build threadtiming

package timing

// Enabled reports whether the binary was built with thread timing.
const Enabled = true

func newDefault() Recorder {
	return NewLog(DefaultPath)
}
