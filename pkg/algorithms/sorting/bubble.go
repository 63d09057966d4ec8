package sorting

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// BubbleSort repeatedly swaps adjacent out-of-order pairs. A pass without
// swaps ends the run early.
var BubbleSort = &catalog.Descriptor{
	ID:         "bubbleSort",
	Name:       "Bubble Sort",
	Category:   catalog.CategorySorting,
	Difficulty: catalog.Beginner,
	Complexity: catalog.Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"},
	Description: "Walks the array comparing neighbours and swapping them when they are out of order. " +
		"After each pass the largest remaining value has bubbled to the end.",
	Pseudocode: []string{
		"for i from 0 to n-2:",
		"  swapped = false",
		"  for j from 0 to n-2-i:",
		"    if a[j] > a[j+1]:",
		"      swap(a[j], a[j+1])",
		"      swapped = true",
		"  if not swapped: break",
		"return a",
	},
	Validate: catalog.ArrayInput(1),
	Run:      bubbleSort,
	Sample:   sample,
}

func bubbleSort(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := slices.Clone(in.Values)
		n := len(a)

		if !e.Emit(step.Info(fmt.Sprintf("Bubble sort over %d values", n))) {
			return
		}
		settled := n
		for i := 0; i < n-1; i++ {
			swapped := false
			if !e.Emit(step.Highlight(1, 2), step.Vars(step.V("pass", i+1), step.V("swapped", false))) {
				return
			}
			for j := 0; j < n-1-i; j++ {
				if !e.Emit(
					step.Highlight(3, 4),
					step.Pointer([]step.Label{step.L("j", j), step.L("j+1", j+1)}, []step.Var{step.V("pass", i+1)}, ""),
					step.Compare(j, j+1, step.Rel(a[j], a[j+1])),
				) {
					return
				}
				if a[j] > a[j+1] {
					a[j], a[j+1] = a[j+1], a[j]
					swapped = true
					if !e.Emit(step.Highlight(5, 6), step.Swap(j, j+1)) {
						return
					}
				}
			}
			settled = n - 1 - i
			if !e.Emit(step.Mark(step.RoleSorted, settled)) {
				return
			}
			if !swapped {
				if !e.Emit(step.Highlight(7), step.Message(step.MessageExplanation, "No swaps in this pass, so the rest is already in order", 7)) {
					return
				}
				break
			}
		}
		if !e.Emit(step.Mark(step.RoleSorted, step.Span(0, settled)...), step.Highlight(8)) {
			return
		}
		e.Finish("Array sorted", step.ResultArray, a, "sorted")
	}
}
