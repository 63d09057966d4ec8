// Package arrays provides producers for contiguous-range problems.
package arrays

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the array algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	MaxSubarray,
	SlidingWindow,
}

// MaxSubarray is Kadane's algorithm.
var MaxSubarray = &catalog.Descriptor{
	ID:          "maxSubarray",
	Name:        "Maximum Subarray (Kadane)",
	Category:    catalog.CategoryArrays,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Keeps the best sum of a run ending at the current index, restarting the run whenever the value alone beats it.",
	Pseudocode: []string{
		"cur = best = a[0]",
		"for i from 1 to n-1:",
		"  cur = max(a[i], cur + a[i])",
		"  best = max(best, cur)",
		"return best",
	},
	Validate: catalog.ArrayInput(1),
	Run:      maxSubarray,
	Sample:   catalog.Input{Values: []int{-2, 1, -3, 4, -1, 2, 1, -5, 4}},
}

func maxSubarray(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		cur, best := a[0], a[0]
		start, bestLo, bestHi := 0, 0, 0
		if !e.Emit(
			step.Info("Kadane's scan for the largest sum of a contiguous run"),
			step.Highlight(1),
			step.Visit(0),
			step.Mark(step.RoleWindow, 0),
			step.Vars(step.V("current", cur), step.V("best", best)),
		) {
			return
		}
		for i := 1; i < len(a); i++ {
			if !e.Emit(step.Highlight(2, 3), step.Visit(i)) {
				return
			}
			if a[i] > cur+a[i] {
				cur = a[i]
				if !e.Emit(
					step.Unmark(step.Span(start, i)...),
					step.Explain(fmt.Sprintf("%d alone beats extending the run, start over at %d", a[i], i)),
				) {
					return
				}
				start = i
			} else {
				cur += a[i]
			}
			if !e.Emit(step.Mark(step.RoleWindow, i)) {
				return
			}
			if cur > best {
				best, bestLo, bestHi = cur, start, i
				if !e.Emit(step.Highlight(4), step.Progress(fmt.Sprintf("New best %d over %d..%d", best, bestLo, bestHi))) {
					return
				}
			}
			if !e.Emit(step.Pointer(
				[]step.Label{step.L("start", start), step.L("i", i)},
				[]step.Var{step.V("current", cur), step.V("best", best)}, "",
			)) {
				return
			}
		}
		if !e.Emit(
			step.Highlight(5),
			step.Unmark(step.Span(0, len(a))...),
			step.Mark(step.RoleFound, step.Span(bestLo, bestHi+1)...),
		) {
			return
		}
		e.Finish(fmt.Sprintf("Maximum sum %d from index %d to %d", best, bestLo, bestHi), step.ResultNumber, best, "max sum")
	}
}

// SlidingWindow finds the largest sum of k consecutive values by sliding a
// fixed window one step at a time.
var SlidingWindow = &catalog.Descriptor{
	ID:          "slidingWindow",
	Name:        "Sliding Window Maximum Sum",
	Category:    catalog.CategoryArrays,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Adds the value entering the window and subtracts the one leaving it, so each shift costs O(1).",
	Pseudocode: []string{
		"sum = a[0] + ... + a[k-1]; best = sum",
		"for i from k to n-1:",
		"  sum = sum + a[i] - a[i-k]",
		"  best = max(best, sum)",
		"return best",
	},
	Params:       []catalog.Param{catalog.Number("k", "Window size", 3, 1, 20)},
	Validate:     catalog.ArrayInput(1),
	Run:          slidingWindow,
	Sample:       catalog.Input{Values: []int{2, 1, 5, 1, 3, 2, 9, 4}},
	SampleParams: catalog.Params{"k": 3},
}

func slidingWindow(in catalog.Input, p catalog.Params) step.Seq {
	k := p.Int("k", 3)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		n := len(a)
		if k > n {
			if !e.Emit(step.Explain(fmt.Sprintf("Window size %d is larger than the array, using %d", k, n))) {
				return
			}
			k = n
		}
		sum := 0
		for i := 0; i < k; i++ {
			sum += a[i]
		}
		best, bestLo := sum, 0
		if !e.Emit(
			step.Info(fmt.Sprintf("Sliding a window of %d over %d values", k, n)),
			step.Highlight(1),
			step.Mark(step.RoleWindow, step.Span(0, k)...),
			step.Vars(step.V("sum", sum), step.V("best", best)),
		) {
			return
		}
		for i := k; i < n; i++ {
			sum += a[i] - a[i-k]
			if !e.Emit(
				step.Highlight(2, 3),
				step.Unmark(i-k),
				step.Visit(i),
				step.Mark(step.RoleWindow, i),
				step.Pointer([]step.Label{step.L("out", i-k), step.L("in", i)}, []step.Var{step.V("sum", sum), step.V("best", best)}, ""),
			) {
				return
			}
			if sum > best {
				best, bestLo = sum, i-k+1
				if !e.Emit(step.Highlight(4), step.Progress(fmt.Sprintf("New best %d at %d..%d", best, bestLo, i))) {
					return
				}
			}
		}
		if !e.Emit(step.Highlight(5), step.Unmark(step.Span(0, n)...), step.Mark(step.RoleFound, step.Span(bestLo, bestLo+k)...)) {
			return
		}
		e.Finish(fmt.Sprintf("Best window sum %d starting at %d", best, bestLo), step.ResultNumber, best, "max sum")
	}
}
