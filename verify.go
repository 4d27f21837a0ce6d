package mandel

import "fmt"

// MismatchError describes the first pixel where two buffers disagree.
// Index is -1 when the buffers do not even have the same dimensions.
type MismatchError struct {
	Index            int
	X, Y             int
	Serial, Parallel int
	// Count is the total number of differing pixels.
	Count int
}

func (e *MismatchError) Error() string {
	if e.Index < 0 {
		return "buffer dimensions differ"
	}
	return fmt.Sprintf("mismatch at index %d (x=%d, y=%d): serial=%d parallel=%d (%d pixels differ)",
		e.Index, e.X, e.Y, e.Serial, e.Parallel, e.Count)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Verify compares two buffers pixel by pixel. The computation is
// deterministic, so any difference is a partitioning bug or a data race.
func Verify(serial, parallel *Buffer) error {
	if serial.Width != parallel.Width || serial.Height != parallel.Height ||
		len(serial.Counts) != len(parallel.Counts) {
		return &MismatchError{Index: -1, X: -1, Y: -1}
	}

	var mismatch *MismatchError
	for i, want := range serial.Counts {
		got := parallel.Counts[i]
		if got == want {
			continue
		}
		if mismatch == nil {
			x, y := serial.Coords(i)
			mismatch = &MismatchError{Index: i, X: x, Y: y, Serial: want, Parallel: got}
		}
		mismatch.Count++
	}
	if mismatch != nil {
		return mismatch
	}
	return nil
}
