package searching

import (
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/step"
)

func search(t *testing.T, d *catalog.Descriptor, values []int, target int) step.Event {
	t.Helper()
	seq, err := d.Start(catalog.Input{Values: values}, catalog.Params{"target": target}, catalog.DefaultLimits())
	if err != nil {
		t.Fatalf("%s: Start() error = %v", d.ID, err)
	}
	events := step.Collect(seq)
	if err := step.CheckTrace(events, len(values)); err != nil {
		t.Fatalf("%s: CheckTrace() = %v", d.ID, err)
	}
	res, _ := step.Last(events)
	if res.ResultKind != step.ResultSearch {
		t.Fatalf("%s: result kind = %q", d.ID, res.ResultKind)
	}
	return res
}

func TestBidirectionalSearch(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		target int
		want   int
	}{
		{"example", []int{5, 3, 8, 1, 9, 2}, 8, 2},
		{"first", []int{5, 3, 8}, 5, 0},
		{"last", []int{5, 3, 8}, 8, 2},
		{"middle of odd", []int{1, 2, 3, 4, 5}, 3, 2},
		{"left wins tie", []int{4, 1, 4}, 4, 0},
		{"left occurrence before right", []int{1, 7, 2, 7, 3}, 7, 1},
		{"missing", []int{1, 2, 3, 4}, 9, -1},
		{"single miss", []int{1}, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := search(t, BidirectionalSearch, tt.values, tt.target); got.Value != tt.want {
				t.Errorf("result = %v, want %d", got.Value, tt.want)
			}
		})
	}
}

func TestSearchesAgree(t *testing.T) {
	sorted := []int{1, 3, 4, 7, 9, 12, 15, 18, 21}
	for _, target := range []int{1, 4, 9, 21, 0, 10, 30} {
		want := -1
		for i, v := range sorted {
			if v == target {
				want = i
				break
			}
		}
		for _, d := range Descriptors {
			if got := search(t, d, sorted, target); got.Value != want {
				t.Errorf("%s(%d) = %v, want %d", d.ID, target, got.Value, want)
			}
		}
	}
}

func TestBinarySearchRejectsUnsorted(t *testing.T) {
	_, err := BinarySearch.Start(catalog.Input{Values: []int{3, 1, 2}}, catalog.Params{"target": 1}, catalog.DefaultLimits())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Start() error = %v, want INVALID_INPUT", err)
	}
}

func TestMissingTargetParamUsesDefault(t *testing.T) {
	events := step.Collect(linearSearch(catalog.Input{Values: []int{4, 0}}, nil))
	res, _ := step.Last(events)
	if res.Value != 1 {
		t.Errorf("result = %v, want 1 (default target 0)", res.Value)
	}
}

func TestBinarySearchVisitsLogarithmically(t *testing.T) {
	values := make([]int, 16)
	for i := range values {
		values[i] = i * 2
	}
	visits := 0
	for ev := range binarySearch(catalog.Input{Values: values}, catalog.Params{"target": 31}) {
		if ev.Kind == step.KindVisit {
			visits++
		}
	}
	if visits > 5 {
		t.Errorf("visits = %d, want at most 5", visits)
	}
}
