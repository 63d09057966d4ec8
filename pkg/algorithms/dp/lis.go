package dp

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// LongestIncreasingSubsequence is the O(n²) DP where lis[i] is the length of
// the longest strictly increasing subsequence ending at i.
var LongestIncreasingSubsequence = &catalog.Descriptor{
	ID:          "longestIncreasingSubsequence",
	Name:        "Longest Increasing Subsequence",
	Category:    catalog.CategoryDP,
	Difficulty:  catalog.Advanced,
	Complexity:  catalog.Complexity{Best: "O(n²)", Average: "O(n²)", Worst: "O(n²)", Space: "O(n)"},
	Description: "Extends the best subsequence ending at each earlier smaller value, then follows parent links back from the best end.",
	Pseudocode: []string{
		"lis[i] = 1 for all i",
		"for i from 1 to n-1:",
		"  for j from 0 to i-1:",
		"    if a[j] < a[i] and lis[j] + 1 > lis[i]:",
		"      lis[i] = lis[j] + 1; prev[i] = j",
		"return max(lis)",
	},
	Validate: catalog.ArrayInput(1),
	Run:      longestIncreasingSubsequence,
	Sample:   catalog.Input{Values: []int{10, 9, 2, 5, 3, 7, 101, 18}},
}

func longestIncreasingSubsequence(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		a := in.Values
		n := len(a)
		lis := make([]int, n)
		prev := make([]int, n)
		for i := range lis {
			lis[i] = 1
			prev[i] = -1
		}
		if !e.Emit(step.Info(fmt.Sprintf("Longest increasing subsequence of %d values", n)), step.Highlight(1), step.Auxiliary(table(lis, n, nil, "every value alone has length 1"))) {
			return
		}

		for i := 1; i < n; i++ {
			if !e.Emit(step.Highlight(2), step.Mark(step.RoleCurrent, i)) {
				return
			}
			for j := 0; j < i; j++ {
				if !e.Emit(step.Highlight(3, 4), step.Compare(j, i, step.Rel(a[j], a[i])), step.Vars(step.V("lis[j]", lis[j]), step.V("lis[i]", lis[i]))) {
					return
				}
				if a[j] < a[i] && lis[j]+1 > lis[i] {
					lis[i] = lis[j] + 1
					prev[i] = j
					if !e.Emit(step.Highlight(5), step.Auxiliary(table(lis, n, []int{j, i}, fmt.Sprintf("lis[%d] = %d via %d", i, lis[i], j)))) {
						return
					}
				}
			}
			if !e.Emit(step.Unmark(i)) {
				return
			}
		}

		best := 0
		for i := range lis {
			if lis[i] > lis[best] {
				best = i
			}
		}
		var chain []int
		for i := best; i >= 0; i = prev[i] {
			chain = append(chain, i)
		}
		slices.Reverse(chain)
		values := make([]int, len(chain))
		for k, i := range chain {
			values[k] = a[i]
		}
		if !e.Emit(step.Highlight(6), step.Mark(step.RoleFound, chain...), step.Auxiliary(table(lis, n, chain, fmt.Sprintf("subsequence %v", values)))) {
			return
		}
		e.Finish(fmt.Sprintf("Length %d, e.g. %v", lis[best], values), step.ResultNumber, lis[best], "length")
	}
}
