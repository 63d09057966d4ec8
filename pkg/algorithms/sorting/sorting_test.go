package sorting

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// replay applies swap events to a copy of values, the way a player does.
func replay(values []int, events []step.Event) []int {
	a := slices.Clone(values)
	for _, ev := range events {
		if ev.Kind == step.KindSwap {
			i, j := ev.Indices[0], ev.Indices[1]
			a[i], a[j] = a[j], a[i]
		}
	}
	return a
}

func TestSortsProduceSortedResult(t *testing.T) {
	inputs := [][]int{
		{5},
		{2, 1},
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{3, 1, 3, 2, 1},
		{29, 10, 14, 37, 13, 5, 42, 21},
		{-4, 0, -999, 999, 7},
	}
	runs := []struct {
		desc   *catalog.Descriptor
		params catalog.Params
	}{
		{BubbleSort, nil},
		{SelectionSort, nil},
		{InsertionSort, nil},
		{QuickSort, nil},
		{QuickSort, catalog.Params{"pivot": PivotFirst}},
	}

	for _, r := range runs {
		for _, values := range inputs {
			name := r.desc.ID + "/" + r.params.String("pivot", "default")
			t.Run(name, func(t *testing.T) {
				orig := slices.Clone(values)
				seq, err := r.desc.Start(catalog.Input{Values: values}, r.params, catalog.DefaultLimits())
				if err != nil {
					t.Fatalf("Start() error = %v", err)
				}
				events := step.Collect(seq)
				if err := step.CheckTrace(events, len(values)); err != nil {
					t.Fatalf("CheckTrace() = %v", err)
				}

				want := slices.Sorted(slices.Values(values))
				res, _ := step.Last(events)
				if res.ResultKind != step.ResultArray || !reflect.DeepEqual(res.Value, want) {
					t.Errorf("result = %v, want %v", res.Value, want)
				}
				if got := replay(values, events); !reflect.DeepEqual(got, want) {
					t.Errorf("replayed swaps = %v, want %v", got, want)
				}
				if !reflect.DeepEqual(values, orig) {
					t.Errorf("input mutated: %v", values)
				}
			})
		}
	}
}

func TestBubbleSortStopsEarly(t *testing.T) {
	events := step.Collect(bubbleSort(catalog.Input{Values: []int{1, 2, 3, 4, 5}}, nil))
	compares := 0
	for _, ev := range events {
		if ev.Kind == step.KindCompare {
			compares++
		}
		if ev.Kind == step.KindSwap {
			t.Fatal("sorted input should not swap")
		}
	}
	if compares != 4 {
		t.Errorf("compares = %d, want one pass of 4", compares)
	}
}

func TestEveryPositionEndsSorted(t *testing.T) {
	values := []int{9, 4, 7, 1}
	for _, d := range Descriptors {
		t.Run(d.ID, func(t *testing.T) {
			sorted := map[int]bool{}
			for ev := range d.Run(catalog.Input{Values: values}, nil) {
				if ev.Kind == step.KindMark && ev.Role == step.RoleSorted {
					for _, i := range ev.Indices {
						sorted[i] = true
					}
				}
			}
			if len(sorted) != len(values) {
				t.Errorf("sorted marks cover %d positions, want %d", len(sorted), len(values))
			}
		})
	}
}
