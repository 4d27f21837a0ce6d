package mandel

import "fmt"

// Comparison holds a serial and a parallel render of the same view.
type Comparison struct {
	Serial   Result
	Parallel Result
	Threads  int

	// Err is the verification outcome: nil, or a *MismatchError.
	// Both results stay available when it is set.
	Err error
}

func (c *Comparison) Speedup() float64 {
	if c.Parallel.Elapsed <= 0 {
		return 0
	}
	return float64(c.Serial.Elapsed) / float64(c.Parallel.Elapsed)
}

// Compare renders v with the serial engine and with p, repeat times each,
// keeping the fastest elapsed time of each engine, then verifies the buffers.
// A configuration or worker error aborts the comparison; a verification
// failure is reported in Comparison.Err.
func Compare(v View, maxIterations int, p Parallel, repeat int) (*Comparison, error) {
	if repeat < 1 {
		repeat = 1
	}
	if _, err := Partition(v.Height, p.Threads, p.Policy); err != nil {
		return nil, err
	}
	return compare(v, maxIterations, p, p.Threads, repeat)
}

func compare(v View, maxIterations int, p Renderer, threads, repeat int) (*Comparison, error) {
	serial, err := best(Serial{}, v, maxIterations, repeat)
	if err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}
	parallel, err := best(p, v, maxIterations, repeat)
	if err != nil {
		return nil, fmt.Errorf("parallel: %w", err)
	}

	return &Comparison{
		Serial:   serial,
		Parallel: parallel,
		Threads:  threads,
		Err:      Verify(serial.Buffer, parallel.Buffer),
	}, nil
}

func best(r Renderer, v View, maxIterations, repeat int) (Result, error) {
	var res Result
	for i := 0; i < repeat; i++ {
		cur, err := r.Render(v, maxIterations)
		if err != nil {
			return Result{}, err
		}
		if i == 0 || cur.Elapsed < res.Elapsed {
			res.Elapsed = cur.Elapsed
		}
		res.Buffer = cur.Buffer
	}
	return res, nil
}
