package mandel

import (
	"errors"
	"time"
)

// Renderer computes escape-time counts for every pixel of a view.
type Renderer interface {
	Render(v View, maxIterations int) (Result, error)
}

// Result of a single engine invocation.
type Result struct {
	Buffer  *Buffer
	Elapsed time.Duration
}

var (
	ErrInvalidView       = errors.New("invalid view")
	ErrInvalidIterations = errors.New("max iterations must be positive")
	ErrInvalidThreads    = errors.New("invalid thread count")
	ErrInvalidPolicy     = errors.New("unknown partition policy")
	ErrWorkerFailed      = errors.New("worker failed")
	ErrMismatch          = errors.New("serial and parallel buffers differ")
)

func validate(v View, maxIterations int) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if maxIterations <= 0 {
		return ErrInvalidIterations
	}
	return nil
}
