package dp

import (
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

func TestFibonacci(t *testing.T) {
	want := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for n, w := range want {
		p := catalog.Params{"n": n}
		seq, err := Fibonacci.Start(catalog.Input{}, p, catalog.DefaultLimits())
		if err != nil {
			t.Fatalf("Start(n=%d) error = %v", n, err)
		}
		events := step.Collect(seq)
		if err := step.CheckTrace(events, Fibonacci.PositionCount(catalog.Input{}, p)); err != nil {
			t.Fatalf("n=%d: CheckTrace() = %v", n, err)
		}
		if res, _ := step.Last(events); res.Value != w {
			t.Errorf("fib(%d) = %v, want %d", n, res.Value, w)
		}
	}
}

func TestFibonacciRejectsLargeN(t *testing.T) {
	if _, err := Fibonacci.Start(catalog.Input{}, catalog.Params{"n": 41}, catalog.DefaultLimits()); err == nil {
		t.Error("n=41 should be rejected")
	}
}

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{[]int{10, 9, 2, 5, 3, 7, 101, 18}, 4},
		{[]int{0, 1, 0, 3, 2, 3}, 4},
		{[]int{7, 7, 7}, 1},
		{[]int{5}, 1},
		{[]int{1, 2, 3, 4}, 4},
	}
	for _, tt := range tests {
		seq, err := LongestIncreasingSubsequence.Start(catalog.Input{Values: tt.values}, nil, catalog.DefaultLimits())
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		events := step.Collect(seq)
		if err := step.CheckTrace(events, len(tt.values)); err != nil {
			t.Fatalf("CheckTrace() = %v", err)
		}
		if res, _ := step.Last(events); res.Value != tt.want {
			t.Errorf("lis(%v) = %v, want %d", tt.values, res.Value, tt.want)
		}
	}
}
