// Package stacks provides stack-based producers.
package stacks

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the stack algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	BalancedParentheses,
}

var pairs = map[rune]rune{')': '(', ']': '[', '}': '{'}

// BalancedParentheses checks bracket nesting with a stack. Characters other
// than ()[]{} are skipped.
var BalancedParentheses = &catalog.Descriptor{
	ID:          "balancedParentheses",
	Name:        "Balanced Parentheses",
	Category:    catalog.CategoryStacks,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(n)"},
	Description: "Pushes every opening bracket and pops on each closing one; a mismatch or a leftover opener means unbalanced.",
	Pseudocode: []string{
		"for each c in s:",
		"  if c is an opening bracket: push(c)",
		"  else if c is a closing bracket:",
		"    if stack is empty or pop() != match(c): return false",
		"return stack is empty",
	},
	Validate: catalog.TextInput(),
	Run:      balancedParentheses,
	Sample:   catalog.Input{Text: "{[()()]}"},
}

func balancedParentheses(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		var stack []int // positions of open brackets
		s := []rune(in.Text)
		snapshot := func(status string) step.Snapshot {
			snap := step.Snapshot{Kind: step.StructureStack, Root: step.NoNode, Status: status}
			for _, i := range stack {
				snap.Cells = append(snap.Cells, string(s[i]))
			}
			return snap
		}

		if !e.Emit(step.Info(fmt.Sprintf("Checking brackets in %q", in.Text)), step.Auxiliary(snapshot("empty stack"))) {
			return
		}
		for i, c := range s {
			if !e.Emit(step.Highlight(1), step.Visit(i)) {
				return
			}
			switch c {
			case '(', '[', '{':
				stack = append(stack, i)
				if !e.Emit(step.Highlight(2), step.Mark(step.RoleCurrent, i), step.Auxiliary(snapshot(fmt.Sprintf("push %c", c)))) {
					return
				}
			case ')', ']', '}':
				if !e.Emit(step.Highlight(3, 4)) {
					return
				}
				if len(stack) == 0 {
					if !e.Emit(step.Mark(step.RoleEliminated, i)) {
						return
					}
					e.Finish(fmt.Sprintf("%c at %d has nothing to close", c, i), step.ResultBoolean, false, "unbalanced")
					return
				}
				top := stack[len(stack)-1]
				if s[top] != pairs[c] {
					if !e.Emit(step.Compare(top, i, step.RelNone), step.Mark(step.RoleEliminated, top, i)) {
						return
					}
					e.Finish(fmt.Sprintf("%c at %d does not close %c at %d", c, i, s[top], top), step.ResultBoolean, false, "unbalanced")
					return
				}
				stack = stack[:len(stack)-1]
				if !e.Emit(
					step.Compare(top, i, step.RelEqual),
					step.Unmark(top),
					step.Mark(step.RoleFound, top, i),
					step.Auxiliary(snapshot(fmt.Sprintf("pop %c", s[top]))),
				) {
					return
				}
			}
		}
		if !e.Emit(step.Highlight(5)) {
			return
		}
		if len(stack) > 0 {
			if !e.Emit(step.Mark(step.RoleEliminated, stack...)) {
				return
			}
			e.Finish(fmt.Sprintf("%d bracket(s) never closed", len(stack)), step.ResultBoolean, false, "unbalanced")
			return
		}
		e.Finish("Every bracket is matched", step.ResultBoolean, true, "balanced")
	}
}
