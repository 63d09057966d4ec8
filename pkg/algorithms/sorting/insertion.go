package sorting

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// InsertionSort shifts each value left until it meets a smaller one. The
// shift is narrated as adjacent swaps so every step moves real positions.
var InsertionSort = &catalog.Descriptor{
	ID:          "insertionSort",
	Name:        "Insertion Sort",
	Category:    catalog.CategorySorting,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"},
	Description: "Builds a sorted prefix one element at a time by sliding each new value left past larger neighbours.",
	Pseudocode: []string{
		"for i from 1 to n-1:",
		"  key = a[i]; j = i - 1",
		"  while j >= 0 and a[j] > key:",
		"    a[j+1] = a[j]; j = j - 1",
		"  a[j+1] = key",
		"return a",
	},
	Validate: catalog.ArrayInput(1),
	Run:      insertionSort,
	Sample:   sample,
}

func insertionSort(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := slices.Clone(in.Values)
		n := len(a)

		if !e.Emit(step.Info(fmt.Sprintf("Insertion sort over %d values", n))) {
			return
		}
		for i := 1; i < n; i++ {
			key := a[i]
			if !e.Emit(step.Highlight(1, 2), step.Mark(step.RoleCurrent, i), step.Vars(step.V("i", i), step.V("key", key))) {
				return
			}
			j := i - 1
			for j >= 0 {
				if !e.Emit(step.Highlight(3), step.Compare(j, j+1, step.Rel(a[j], key))) {
					return
				}
				if a[j] <= key {
					break
				}
				a[j], a[j+1] = a[j+1], a[j]
				if !e.Emit(step.Highlight(4), step.Swap(j, j+1)) {
					return
				}
				j--
			}
			if !e.Emit(step.Highlight(5), step.Unmark(i), step.Progress(fmt.Sprintf("%d inserted at position %d", key, j+1))) {
				return
			}
		}
		if !e.Emit(step.Mark(step.RoleSorted, step.Span(0, n)...), step.Highlight(6)) {
			return
		}
		e.Finish("Array sorted", step.ResultArray, a, "sorted")
	}
}
