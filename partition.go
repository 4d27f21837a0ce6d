package mandel

import (
	"fmt"
	"strings"
)

// Policy decides how image rows are distributed among workers.
//
// Block hands each worker one contiguous run of ceil(height/threads) rows.
// It is cheap to set up but unbalanced on views whose expensive rows
// (points inside the set) cluster together, e.g. around the real axis.
// Interleaved gives worker t every row with row%threads == t, spreading
// expensive rows over all workers. Both cover every row exactly once.
type Policy int

const (
	Block Policy = iota
	Interleaved
)

func (p Policy) String() string {
	switch p {
	case Block:
		return "block"
	case Interleaved:
		return "interleaved"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return Block, nil
	case "interleaved", "striped":
		return Interleaved, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// Assignment is the set of rows owned by one worker:
// Start, Start+Stride, ... while < End. An assignment may be empty.
type Assignment struct {
	Thread     int
	Start, End int
	Stride     int
}

// Rows calls fn for every row of the assignment in increasing order.
func (a Assignment) Rows(fn func(y int)) {
	for y := a.Start; y < a.End; y += a.Stride {
		fn(y)
	}
}

// Len is the number of rows in the assignment.
func (a Assignment) Len() int {
	if a.End <= a.Start {
		return 0
	}
	return (a.End - a.Start + a.Stride - 1) / a.Stride
}

// Partition splits rows [0, height) into exactly threads assignments.
// Threads beyond the number of rows get empty assignments.
func Partition(height, threads int, policy Policy) ([]Assignment, error) {
	if threads <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreads, threads)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidView, height)
	}

	as := make([]Assignment, threads)
	switch policy {
	case Block:
		chunk := (height + threads - 1) / threads
		for t := range as {
			start := min(t*chunk, height)
			end := min(start+chunk, height)
			as[t] = Assignment{Thread: t, Start: start, End: end, Stride: 1}
		}
	case Interleaved:
		for t := range as {
			as[t] = Assignment{Thread: t, Start: min(t, height), End: height, Stride: threads}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, policy)
	}
	return as, nil
}
