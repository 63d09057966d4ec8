package sorting

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Pivot choices for [QuickSort].
const (
	PivotLast  = "last"
	PivotFirst = "first"
)

// QuickSort is recursive quicksort with Lomuto partitioning. With the
// "first" pivot the first element is swapped to the end before partitioning.
var QuickSort = &catalog.Descriptor{
	ID:         "quickSort",
	Name:       "Quick Sort",
	Category:   catalog.CategorySorting,
	Difficulty: catalog.Intermediate,
	Complexity: catalog.Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n²)", Space: "O(log n)"},
	Description: "Partitions the array around a pivot so smaller values end up on its left, " +
		"then sorts both sides recursively.",
	Pseudocode: []string{
		"quickSort(lo, hi):",
		"  pivot = a[hi]; i = lo",
		"  for j from lo to hi-1:",
		"    if a[j] < pivot:",
		"      swap(a[i], a[j]); i = i + 1",
		"  swap(a[i], a[hi])",
		"  quickSort(lo, i-1); quickSort(i+1, hi)",
	},
	Params: []catalog.Param{
		catalog.Select("pivot", "Pivot", PivotLast, PivotLast, PivotFirst),
	},
	Validate:     catalog.ArrayInput(1),
	Run:          quickSort,
	Sample:       sample,
	SampleParams: catalog.Params{"pivot": PivotLast},
}

func quickSort(in catalog.Input, p catalog.Params) step.Seq {
	first := p.String("pivot", PivotLast) == PivotFirst
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := slices.Clone(in.Values)

		var sort func(lo, hi int)
		sort = func(lo, hi int) {
			if e.Stopped() || lo > hi {
				return
			}
			if lo == hi {
				e.Emit(step.Mark(step.RoleSorted, lo))
				return
			}
			if !e.Emit(step.Highlight(1), step.Pointer([]step.Label{step.L("lo", lo), step.L("hi", hi)}, nil, fmt.Sprintf("sorting %d..%d", lo, hi))) {
				return
			}
			if first {
				a[lo], a[hi] = a[hi], a[lo]
				if !e.Emit(step.Explain("Move the first element to the end to use it as the pivot"), step.Swap(lo, hi)) {
					return
				}
			}

			pivot := a[hi]
			i := lo
			if !e.Emit(step.Highlight(2), step.Mark(step.RoleCurrent, hi), step.Vars(step.V("pivot", pivot))) {
				return
			}
			for j := lo; j < hi; j++ {
				if !e.Emit(
					step.Highlight(3, 4),
					step.Pointer([]step.Label{step.L("i", i), step.L("j", j)}, []step.Var{step.V("pivot", pivot)}, ""),
					step.Compare(j, hi, step.Rel(a[j], pivot)),
				) {
					return
				}
				if a[j] < pivot {
					if i != j {
						a[i], a[j] = a[j], a[i]
						if !e.Emit(step.Highlight(5), step.Swap(i, j)) {
							return
						}
					}
					i++
				}
			}
			if i != hi {
				a[i], a[hi] = a[hi], a[i]
				if !e.Emit(step.Highlight(6), step.Swap(i, hi)) {
					return
				}
			}
			if !e.Emit(step.Unmark(hi), step.Mark(step.RoleSorted, i), step.Progress(fmt.Sprintf("Pivot %d placed at position %d", pivot, i))) {
				return
			}
			e.Emit(step.Highlight(7))
			sort(lo, i-1)
			sort(i+1, hi)
		}

		if !e.Emit(step.Info(fmt.Sprintf("Quick sort over %d values, pivot = %s element", len(a), p.String("pivot", PivotLast)))) {
			return
		}
		sort(0, len(a)-1)
		if e.Stopped() {
			return
		}
		e.Finish("Array sorted", step.ResultArray, a, "sorted")
	}
}
