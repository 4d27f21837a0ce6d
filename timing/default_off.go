//go:build !threadtiming

package timing

// Enabled reports whether the binary was built with thread timing.
const Enabled = false

func newDefault() Recorder {
	return Nop{}
}
