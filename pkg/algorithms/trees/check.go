package trees

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

// IsBST narrows an open (min, max) interval on the way down. A node whose
// value is not strictly inside its interval fails the check, so duplicates
// are rejected.
var IsBST = &catalog.Descriptor{
	ID:         "isBST",
	Name:       "Validate BST",
	Category:   catalog.CategoryTrees,
	Difficulty: catalog.Intermediate,
	Complexity: catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(h)"},
	Description: "Checks the BST property by passing down the range each node must fall in. " +
		"Comparing only with direct children is not enough: a deep node can break an ancestor's bound.",
	Pseudocode: []string{
		"valid(node, min, max):",
		"  if node is null: return true",
		"  if node.value <= min or node.value >= max: return false",
		"  return valid(node.left, min, node.value)",
		"     and valid(node.right, node.value, max)",
	},
	Validate: catalog.TreeInput(),
	Run:      isBST,
	Sample:   sample,
}

func isBST(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		t := build(in)
		if t.IsEmpty() {
			empty(e, step.ResultBoolean, true, "valid BST")
			return
		}
		w := newWalker(e, t)
		if !e.Emit(step.Info("Checking every node against the range its ancestors allow")) || !w.show("start") {
			return
		}

		var valid func(id int, lo, hi bound) bool
		valid = func(id int, lo, hi bound) bool {
			if id == tree.NoNode {
				return true
			}
			v := w.t.Value(id)
			rng := fmt.Sprintf("(%s, %s)", lo.format("-∞"), hi.format("+∞"))
			if !e.Emit(
				step.Highlight(1, 2),
				step.Visit(id),
				step.Vars(step.V("node", v), step.V("min", lo.format("-∞")), step.V("max", hi.format("+∞"))),
			) || !w.tag(id, step.RoleCurrent, fmt.Sprintf("%d must be in %s", v, rng)) {
				return false
			}
			if (lo.set && v <= lo.value) || (hi.set && v >= hi.value) {
				e.Emit(step.Highlight(3), step.Mark(step.RoleEliminated, id), step.Explain(fmt.Sprintf("%d is outside %s", v, rng)))
				w.tag(id, step.RoleEliminated, "violation")
				return false
			}
			w.t = w.t.SetHighlight(id, step.RoleVisited)
			if !e.Emit(step.Highlight(4, 5)) {
				return false
			}
			return valid(w.t.Left(id), lo, bound{v, true}) && valid(w.t.Right(id), bound{v, true}, hi)
		}

		ok := valid(t.Root, bound{}, bound{})
		if e.Stopped() {
			return
		}
		if ok {
			if !w.show("valid") {
				return
			}
			e.Finish("Every node is inside its range: this is a valid BST", step.ResultBoolean, true, "valid BST")
			return
		}
		e.Finish("The tree is not a valid BST", step.ResultBoolean, false, "not a BST")
	}
}

// IsBalanced computes subtree heights bottom-up and stops at the first node
// whose subtree heights differ by more than one. An empty subtree has
// height -1.
var IsBalanced = &catalog.Descriptor{
	ID:          "isBalanced",
	Name:        "Balanced Tree Check",
	Category:    catalog.CategoryTrees,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(h)"},
	Description: "A tree is height-balanced when, at every node, the heights of the two subtrees differ by at most one.",
	Pseudocode: []string{
		"height(node):",
		"  if node is null: return -1",
		"  lh = height(node.left); if lh fails: fail",
		"  rh = height(node.right); if rh fails: fail",
		"  if |lh - rh| > 1: fail",
		"  return 1 + max(lh, rh)",
	},
	Validate: catalog.TreeInput(),
	Run:      isBalanced,
	Sample:   catalog.Input{Values: []int{1, 2, 3, 4, 5, 6, -1, 7}},
}

func isBalanced(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		t := build(in)
		if t.IsEmpty() {
			empty(e, step.ResultBoolean, true, "balanced")
			return
		}
		w := newWalker(e, t)
		if !e.Emit(step.Info("Computing subtree heights bottom-up")) || !w.show("start") {
			return
		}

		var height func(id int) (int, bool)
		height = func(id int) (int, bool) {
			if id == tree.NoNode {
				return -1, true
			}
			if !e.Emit(step.Highlight(1)) || !w.tag(id, step.RoleComparing, "descend") {
				return 0, false
			}
			lh, ok := height(w.t.Left(id))
			if !ok {
				return 0, false
			}
			if !e.Emit(step.Highlight(3)) {
				return 0, false
			}
			rh, ok := height(w.t.Right(id))
			if !ok {
				return 0, false
			}
			v := w.t.Value(id)
			if !e.Emit(
				step.Highlight(4, 5),
				step.Visit(id),
				step.Vars(step.V("node", v), step.V("left height", lh), step.V("right height", rh)),
			) {
				return 0, false
			}
			if diff := lh - rh; diff > 1 || diff < -1 {
				e.Emit(step.Mark(step.RoleEliminated, id), step.Explain(fmt.Sprintf("At %d the subtree heights %d and %d differ by more than one", v, lh, rh)))
				w.tag(id, step.RoleEliminated, "unbalanced")
				return 0, false
			}
			h := 1 + max(lh, rh)
			if !e.Emit(step.Highlight(6)) || !w.tag(id, step.RoleVisited, fmt.Sprintf("height(%d) = %d", v, h)) {
				return 0, false
			}
			return h, true
		}

		_, ok := height(t.Root)
		if e.Stopped() {
			return
		}
		if ok {
			e.Finish("Every node's subtrees differ in height by at most one", step.ResultBoolean, true, "balanced")
			return
		}
		e.Finish("The tree is not height-balanced", step.ResultBoolean, false, "unbalanced")
	}
}

// TreeHeight counts edges on the longest root-to-leaf path. A single node
// has height 0 and an empty tree -1.
var TreeHeight = &catalog.Descriptor{
	ID:          "treeHeight",
	Name:        "Tree Height",
	Category:    catalog.CategoryTrees,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(h)"},
	Description: "Computes the height of every subtree from its children, in postorder.",
	Pseudocode: []string{
		"height(node):",
		"  if node is null: return -1",
		"  return 1 + max(height(node.left), height(node.right))",
	},
	Validate: catalog.TreeInput(),
	Run:      treeHeight,
	Sample:   sample,
}

func treeHeight(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		t := build(in)
		if t.IsEmpty() {
			empty(e, step.ResultSearch, -1, "height -1")
			return
		}
		w := newWalker(e, t)
		if !e.Emit(step.Info("Measuring the tree bottom-up")) || !w.show("start") {
			return
		}

		var height func(id int) int
		height = func(id int) int {
			if id == tree.NoNode || e.Stopped() {
				return -1
			}
			w.tag(id, step.RoleComparing, "descend")
			lh := height(w.t.Left(id))
			rh := height(w.t.Right(id))
			h := 1 + max(lh, rh)
			v := w.t.Value(id)
			e.Emit(
				step.Highlight(3),
				step.Visit(id),
				step.Vars(step.V("node", v), step.V("left", lh), step.V("right", rh), step.V("height", h)),
			)
			w.tag(id, step.RoleVisited, fmt.Sprintf("height(%d) = %d", v, h))
			return h
		}

		h := height(t.Root)
		if e.Stopped() {
			return
		}
		e.Finish(fmt.Sprintf("The tree has height %d", h), step.ResultSearch, h, fmt.Sprintf("height %d", h))
	}
}
