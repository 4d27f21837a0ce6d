package timing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// ReadLog parses a timing log written by Log.
func ReadLog(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(first, header) {
		return nil, fmt.Errorf("unexpected header %q", first)
	}

	var samples []Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read sample: %w", err)
		}
		s, err := parseRecord(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
}

// ReadLogFile is ReadLog on the file at path.
func ReadLogFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLog(f)
}

func parseRecord(rec []string) (Sample, error) {
	var (
		s    Sample
		err  error
		errs []error
	)
	atoi := func(v string) int {
		n, e := strconv.Atoi(v)
		errs = append(errs, e)
		return n
	}
	atof := func(v string) float64 {
		f, e := strconv.ParseFloat(v, 64)
		errs = append(errs, e)
		return f
	}

	s.RunID = atoi(rec[0])
	s.Label = rec[1]
	s.NumThreads = atoi(rec[2])
	s.ThreadID = atoi(rec[3])
	s.StartMs = atof(rec[4])
	s.EndMs = atof(rec[5])
	s.DurationMs = atof(rec[6])

	if err = errors.Join(errs...); err != nil {
		return Sample{}, err
	}
	return s, nil
}
