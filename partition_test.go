package mandel

import (
	"errors"
	"testing"
)

// checkCoverage asserts that the assignments own every row of [0, height) exactly once.
func checkCoverage(t *testing.T, as []Assignment, height, threads int) {
	t.Helper()
	if len(as) != threads {
		t.Fatalf("got %d assignments, want %d", len(as), threads)
	}
	owner := make([]int, height)
	for i := range owner {
		owner[i] = -1
	}
	total := 0
	for i, a := range as {
		if a.Thread != i {
			t.Errorf("assignment %d has thread %d", i, a.Thread)
		}
		if a.Start < 0 || a.End > height || a.Stride < 1 {
			t.Fatalf("assignment %+v out of bounds for height %d", a, height)
		}
		a.Rows(func(y int) {
			if owner[y] != -1 {
				t.Errorf("row %d owned by %d and %d", y, owner[y], a.Thread)
			}
			owner[y] = a.Thread
		})
		total += a.Len()
	}
	for y, o := range owner {
		if o == -1 {
			t.Errorf("row %d has no owner", y)
		}
	}
	if total != height {
		t.Errorf("assignment lengths sum to %d, want %d", total, height)
	}
}

func TestPartition_Coverage(t *testing.T) {
	for _, policy := range []Policy{Block, Interleaved} {
		for _, height := range []int{0, 1, 2, 7, 99, 100, 1200} {
			for _, threads := range []int{1, 2, 3, 4, 7, 8, 16, 100, 1500} {
				as, err := Partition(height, threads, policy)
				if err != nil {
					t.Fatalf("Partition(%d, %d, %v): %v", height, threads, policy, err)
				}
				checkCoverage(t, as, height, threads)
			}
		}
	}
}

func TestPartition_Block(t *testing.T) {
	as, err := Partition(10, 4, Block)
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 3}, {3, 6}, {6, 9}, {9, 10}}
	for i, a := range as {
		if a.Start != want[i][0] || a.End != want[i][1] || a.Stride != 1 {
			t.Errorf("assignment %d = %+v, want [%d, %d)", i, a, want[i][0], want[i][1])
		}
	}
}

func TestPartition_SingleThreadCoversImage(t *testing.T) {
	for _, policy := range []Policy{Block, Interleaved} {
		as, err := Partition(37, 1, policy)
		if err != nil {
			t.Fatal(err)
		}
		if a := as[0]; a.Start != 0 || a.End != 37 || a.Len() != 37 {
			t.Errorf("%v: %+v", policy, a)
		}
	}
}

func TestPartition_MoreThreadsThanRows(t *testing.T) {
	for _, policy := range []Policy{Block, Interleaved} {
		as, err := Partition(3, 8, policy)
		if err != nil {
			t.Fatal(err)
		}
		for _, a := range as[3:] {
			if a.Len() != 0 {
				t.Errorf("%v: excess thread %d got rows %+v", policy, a.Thread, a)
			}
			if a.Start > 3 || a.End > 3 {
				t.Errorf("%v: excess thread %d out of bounds %+v", policy, a.Thread, a)
			}
		}
	}
}

func TestPartition_Errors(t *testing.T) {
	for _, threads := range []int{0, -1} {
		if _, err := Partition(10, threads, Block); !errors.Is(err, ErrInvalidThreads) {
			t.Errorf("threads=%d: err = %v, want ErrInvalidThreads", threads, err)
		}
	}
	if _, err := Partition(10, 2, Policy(9)); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("err = %v, want ErrInvalidPolicy", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		err  bool
	}{
		{"", Block, false},
		{"block", Block, false},
		{"Interleaved", Interleaved, false},
		{"striped", Interleaved, false},
		{"dynamic", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
	if Interleaved.String() != "interleaved" || Block.String() != "block" {
		t.Errorf("String() = %q, %q", Block, Interleaved)
	}
}
