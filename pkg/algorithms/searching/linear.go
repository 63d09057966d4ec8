package searching

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// LinearSearch scans left to right.
var LinearSearch = &catalog.Descriptor{
	ID:          "linearSearch",
	Name:        "Linear Search",
	Category:    catalog.CategorySearching,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Checks every element in order until the target turns up or the array runs out.",
	Pseudocode: []string{
		"for i from 0 to n-1:",
		"  if a[i] == target: return i",
		"return -1",
	},
	Params:       []catalog.Param{targetParam()},
	Validate:     catalog.ArrayInput(1),
	Run:          linearSearch,
	Sample:       catalog.Input{Values: []int{7, 3, 9, 1, 5, 8}},
	SampleParams: catalog.Params{"target": 5},
}

func linearSearch(in catalog.Input, p catalog.Params) step.Seq {
	target := p.Int("target", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		if !e.Emit(step.Info(fmt.Sprintf("Looking for %d", target))) {
			return
		}
		for i, v := range a {
			if !e.Emit(
				step.Highlight(1, 2),
				step.Pointer([]step.Label{step.L("i", i)}, []step.Var{step.V("target", target), step.V("a[i]", v)}, ""),
				step.Visit(i),
			) {
				return
			}
			if v == target {
				finish(e, i, target)
				return
			}
			if !e.Emit(step.Mark(step.RoleEliminated, i)) {
				return
			}
		}
		if !e.Emit(step.Highlight(3)) {
			return
		}
		finish(e, -1, target)
	}
}
