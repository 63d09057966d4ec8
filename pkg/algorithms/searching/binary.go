package searching

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// BinarySearch halves a sorted array around its midpoint. Unsorted input is
// rejected by the validator.
var BinarySearch = &catalog.Descriptor{
	ID:          "binarySearch",
	Name:        "Binary Search",
	Category:    catalog.CategorySearching,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(log n)", Worst: "O(log n)", Space: "O(1)"},
	Description: "Compares the target with the middle element and discards the half that cannot contain it.",
	Pseudocode: []string{
		"lo = 0; hi = n - 1",
		"while lo <= hi:",
		"  mid = (lo + hi) / 2",
		"  if a[mid] == target: return mid",
		"  if a[mid] < target: lo = mid + 1",
		"  else: hi = mid - 1",
		"return -1",
	},
	Params:       []catalog.Param{targetParam()},
	Validate:     catalog.Chain(catalog.ArrayInput(1), catalog.Sorted()),
	Run:          binarySearch,
	Sample:       catalog.Input{Values: []int{2, 5, 8, 12, 16, 23, 38, 56, 72, 91}},
	SampleParams: catalog.Params{"target": 23},
}

func binarySearch(in catalog.Input, p catalog.Params) step.Seq {
	target := p.Int("target", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		lo, hi := 0, len(a)-1
		if !e.Emit(step.Info(fmt.Sprintf("Looking for %d in a sorted array", target)), step.Highlight(1)) {
			return
		}
		for lo <= hi {
			mid := lo + (hi-lo)/2
			if !e.Emit(
				step.Highlight(2, 3),
				step.Pointer([]step.Label{step.L("lo", lo), step.L("mid", mid), step.L("hi", hi)}, []step.Var{step.V("target", target)}, ""),
				step.Visit(mid),
			) {
				return
			}
			switch {
			case a[mid] == target:
				if !e.Emit(step.Highlight(4)) {
					return
				}
				finish(e, mid, target)
				return
			case a[mid] < target:
				if !e.Emit(
					step.Highlight(5),
					step.Mark(step.RoleEliminated, step.Span(lo, mid+1)...),
					step.Explain(fmt.Sprintf("%d < %d, discard the left half", a[mid], target)),
				) {
					return
				}
				lo = mid + 1
			default:
				if !e.Emit(
					step.Highlight(6),
					step.Mark(step.RoleEliminated, step.Span(mid, hi+1)...),
					step.Explain(fmt.Sprintf("%d > %d, discard the right half", a[mid], target)),
				) {
					return
				}
				hi = mid - 1
			}
		}
		if !e.Emit(step.Highlight(7)) {
			return
		}
		finish(e, -1, target)
	}
}
