package sorting

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// SelectionSort grows a sorted prefix by selecting the minimum of the
// unsorted suffix on each pass.
var SelectionSort = &catalog.Descriptor{
	ID:          "selectionSort",
	Name:        "Selection Sort",
	Category:    catalog.CategorySorting,
	Difficulty:  catalog.Beginner,
	Complexity:  quadratic,
	Description: "Finds the smallest value in the unsorted part and swaps it into place, one position per pass.",
	Pseudocode: []string{
		"for i from 0 to n-2:",
		"  min = i",
		"  for j from i+1 to n-1:",
		"    if a[j] < a[min]: min = j",
		"  if min != i: swap(a[i], a[min])",
		"return a",
	},
	Validate: catalog.ArrayInput(1),
	Run:      selectionSort,
	Sample:   sample,
}

func selectionSort(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := slices.Clone(in.Values)
		n := len(a)

		if !e.Emit(step.Info(fmt.Sprintf("Selection sort over %d values", n))) {
			return
		}
		for i := 0; i < n-1; i++ {
			lo := i
			if !e.Emit(
				step.Highlight(1, 2),
				step.Mark(step.RoleCurrent, i),
				step.Pointer([]step.Label{step.L("i", i), step.L("min", lo)}, []step.Var{step.V("min value", a[lo])}, ""),
			) {
				return
			}
			for j := i + 1; j < n; j++ {
				if !e.Emit(step.Highlight(3, 4), step.Compare(j, lo, step.Rel(a[j], a[lo]))) {
					return
				}
				if a[j] < a[lo] {
					lo = j
					if !e.Emit(step.Pointer([]step.Label{step.L("i", i), step.L("min", lo)}, []step.Var{step.V("min value", a[lo])}, "new minimum")) {
						return
					}
				}
			}
			if lo != i {
				a[i], a[lo] = a[lo], a[i]
				if !e.Emit(step.Highlight(5), step.Swap(i, lo)) {
					return
				}
			}
			if !e.Emit(step.Unmark(i), step.Mark(step.RoleSorted, i)) {
				return
			}
		}
		if !e.Emit(step.Mark(step.RoleSorted, n-1), step.Highlight(6)) {
			return
		}
		e.Finish("Array sorted", step.ResultArray, a, "sorted")
	}
}
