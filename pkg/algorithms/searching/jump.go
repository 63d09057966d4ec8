package searching

import (
	"fmt"
	"math"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// JumpSearch skips ahead in blocks of √n over a sorted array, then scans the
// block that can hold the target.
var JumpSearch = &catalog.Descriptor{
	ID:          "jumpSearch",
	Name:        "Jump Search",
	Category:    catalog.CategorySearching,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(√n)", Worst: "O(√n)", Space: "O(1)"},
	Description: "Jumps through a sorted array in fixed-size blocks and falls back to a linear scan inside one block.",
	Pseudocode: []string{
		"step = floor(sqrt(n)); prev = 0",
		"while a[min(step, n) - 1] < target:",
		"  prev = step; step = step + floor(sqrt(n))",
		"  if prev >= n: return -1",
		"for i from prev to min(step, n) - 1:",
		"  if a[i] == target: return i",
		"return -1",
	},
	Params:       []catalog.Param{targetParam()},
	Validate:     catalog.Chain(catalog.ArrayInput(1), catalog.Sorted()),
	Run:          jumpSearch,
	Sample:       catalog.Input{Values: []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19}},
	SampleParams: catalog.Params{"target": 15},
}

func jumpSearch(in catalog.Input, p catalog.Params) step.Seq {
	target := p.Int("target", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		n := len(a)
		block := max(1, int(math.Sqrt(float64(n))))

		if !e.Emit(step.Info(fmt.Sprintf("Looking for %d with blocks of %d", target, block)), step.Highlight(1)) {
			return
		}
		prev, next := 0, block
		for {
			end := min(next, n) - 1
			if !e.Emit(
				step.Highlight(2),
				step.Pointer([]step.Label{step.L("prev", prev), step.L("block end", end)}, []step.Var{step.V("target", target), step.V("step", block)}, ""),
				step.Visit(end),
			) {
				return
			}
			if a[end] >= target {
				break
			}
			if !e.Emit(step.Highlight(3), step.Mark(step.RoleEliminated, step.Span(prev, end+1)...)) {
				return
			}
			prev = next
			next += block
			if prev >= n {
				if !e.Emit(step.Highlight(4)) {
					return
				}
				finish(e, -1, target)
				return
			}
		}

		if !e.Emit(step.Explain(fmt.Sprintf("The target can only be in %d..%d", prev, min(next, n)-1))) {
			return
		}
		for i := prev; i < min(next, n); i++ {
			if !e.Emit(step.Highlight(5, 6), step.Pointer([]step.Label{step.L("i", i)}, []step.Var{step.V("target", target)}, ""), step.Visit(i)) {
				return
			}
			if a[i] == target {
				finish(e, i, target)
				return
			}
			if a[i] > target {
				break
			}
		}
		if !e.Emit(step.Highlight(7)) {
			return
		}
		finish(e, -1, target)
	}
}
