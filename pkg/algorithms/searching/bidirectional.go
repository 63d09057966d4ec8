package searching

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// BidirectionalSearch moves two cursors inward from both ends. Each
// iteration checks the left cursor before the right one, so when the target
// appears at both the left occurrence wins.
var BidirectionalSearch = &catalog.Descriptor{
	ID:          "bidirectionalSearch",
	Name:        "Bidirectional Search",
	Category:    catalog.CategorySearching,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Scans from both ends at once, halving the number of iterations of a linear scan.",
	Pseudocode: []string{
		"left = 0; right = n - 1",
		"while left <= right:",
		"  if a[left] == target: return left",
		"  if a[right] == target: return right",
		"  left = left + 1; right = right - 1",
		"return -1",
	},
	Params:       []catalog.Param{targetParam()},
	Validate:     catalog.ArrayInput(1),
	Run:          bidirectionalSearch,
	Sample:       catalog.Input{Values: []int{5, 3, 8, 1, 9, 2}},
	SampleParams: catalog.Params{"target": 8},
}

func bidirectionalSearch(in catalog.Input, p catalog.Params) step.Seq {
	target := p.Int("target", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		left, right := 0, len(a)-1
		if !e.Emit(step.Info(fmt.Sprintf("Looking for %d from both ends", target)), step.Highlight(1)) {
			return
		}
		for left <= right {
			if !e.Emit(
				step.Highlight(2),
				step.Pointer([]step.Label{step.L("left", left), step.L("right", right)}, []step.Var{step.V("target", target)}, ""),
				step.Mark(step.RoleComparing, left, right),
				step.Highlight(3),
				step.Visit(left),
			) {
				return
			}
			if a[left] == target {
				finish(e, left, target)
				return
			}
			if right != left {
				if !e.Emit(step.Highlight(4), step.Visit(right)) {
					return
				}
				if a[right] == target {
					finish(e, right, target)
					return
				}
			}
			if !e.Emit(step.Highlight(5), step.Mark(step.RoleEliminated, left, right)) {
				return
			}
			left++
			right--
		}
		if !e.Emit(step.Highlight(6), step.Explain("The cursors crossed without a match")) {
			return
		}
		finish(e, -1, target)
	}
}
