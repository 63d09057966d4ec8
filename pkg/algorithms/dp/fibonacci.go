package dp

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Fibonacci fills fib[0..n] bottom-up. Positions are table cells.
var Fibonacci = &catalog.Descriptor{
	ID:          "fibonacci",
	Name:        "Fibonacci (Tabulation)",
	Category:    catalog.CategoryDP,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(n)"},
	Description: "Computes each Fibonacci number once from the two before it instead of recomputing overlapping subproblems.",
	Pseudocode: []string{
		"fib[0] = 0; fib[1] = 1",
		"for i from 2 to n:",
		"  fib[i] = fib[i-1] + fib[i-2]",
		"return fib[n]",
	},
	Params:       []catalog.Param{catalog.Number("n", "n", 10, 0, 40)},
	Validate:     catalog.NoInput(),
	Run:          fibonacci,
	Positions:    func(_ catalog.Input, p catalog.Params) int { return p.Int("n", 10) + 1 },
	SampleParams: catalog.Params{"n": 10},
}

func fibonacci(_ catalog.Input, p catalog.Params) step.Seq {
	n := max(0, p.Int("n", 10))
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		fib := make([]int, n+1)
		if n >= 1 {
			fib[1] = 1
		}
		base := min(n, 1) + 1
		if !e.Emit(
			step.Info(fmt.Sprintf("Tabulating Fibonacci numbers up to fib(%d)", n)),
			step.Highlight(1),
			step.Mark(step.RoleSorted, step.Span(0, base)...),
			step.Auxiliary(table(fib, base, nil, "base cases")),
		) {
			return
		}
		for i := 2; i <= n; i++ {
			fib[i] = fib[i-1] + fib[i-2]
			if !e.Emit(
				step.Highlight(2, 3),
				step.Pointer([]step.Label{step.L("i-2", i-2), step.L("i-1", i-1), step.L("i", i)}, []step.Var{step.V("fib[i]", fib[i])}, ""),
				step.Visit(i),
				step.Mark(step.RoleSorted, i),
				step.Auxiliary(table(fib, i+1, []int{i - 2, i - 1, i}, fmt.Sprintf("fib(%d) = %d + %d", i, fib[i-1], fib[i-2]))),
			) {
				return
			}
		}
		if !e.Emit(step.Highlight(4), step.Mark(step.RoleFound, n)) {
			return
		}
		e.Finish(fmt.Sprintf("fib(%d) = %d", n, fib[n]), step.ResultNumber, fib[n], fmt.Sprintf("fib(%d)", n))
	}
}
