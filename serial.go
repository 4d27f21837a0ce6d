package mandel

import "time"

// Serial renders the whole image on the calling goroutine.
// Its output is the reference the parallel engine is checked against.
type Serial struct{}

func (Serial) Render(v View, maxIterations int) (Result, error) {
	if err := validate(v, maxIterations); err != nil {
		return Result{}, err
	}

	buf := NewBuffer(v.Width, v.Height)
	start := time.Now()
	for y := 0; y < v.Height; y++ {
		renderRow(v, y, buf.Row(y), maxIterations)
	}
	return Result{Buffer: buf, Elapsed: time.Since(start)}, nil
}

var _ Renderer = Serial{}
