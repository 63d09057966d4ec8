package trees

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

// LowestCommonAncestor finds the deepest node that has both values in its
// subtree. It works on any binary tree, not only BSTs. Values that are not
// in the tree end the run with a message and a -1 result.
var LowestCommonAncestor = &catalog.Descriptor{
	ID:          "lowestCommonAncestor",
	Name:        "Lowest Common Ancestor",
	Category:    catalog.CategoryTrees,
	Difficulty:  catalog.Advanced,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(h)"},
	Description: "Searches both subtrees of every node. The first node that finds one value on each side, or is itself one of the values, is the answer.",
	Pseudocode: []string{
		"lca(node):",
		"  if node is null: return null",
		"  if node.value == p or node.value == q: return node",
		"  left = lca(node.left); right = lca(node.right)",
		"  if left and right: return node",
		"  return left or right",
	},
	Params: []catalog.Param{
		catalog.Number("p", "First value", 0, -999, 999),
		catalog.Number("q", "Second value", 0, -999, 999),
	},
	Validate:     catalog.TreeInput(),
	Run:          lowestCommonAncestor,
	Sample:       catalog.Input{Values: []int{3, 5, 1, 6, 2, 0, 8, -1, -1, 7, 4}},
	SampleParams: catalog.Params{"p": 7, "q": 4},
}

// lcaOptions holds the two values whose ancestor is wanted.
type lcaOptions struct {
	P int `param:"p"`
	Q int `param:"q"`
}

func lowestCommonAncestor(in catalog.Input, p catalog.Params) step.Seq {
	var opts lcaOptions
	if err := p.Decode(&opts); err != nil {
		opts = lcaOptions{}
	}
	a, b := opts.P, opts.Q
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		t := build(in)
		if t.IsEmpty() {
			empty(e, step.ResultSearch, -1, "no ancestor")
			return
		}
		w := newWalker(e, t)
		if !e.Emit(step.Info(fmt.Sprintf("Looking for the lowest common ancestor of %d and %d", a, b))) || !w.show("start") {
			return
		}
		for _, v := range []int{a, b} {
			if !t.Contains(v) {
				e.Finish(fmt.Sprintf("%d is not in the tree, so there is no common ancestor", v), step.ResultSearch, -1, "not found")
				return
			}
		}

		var lca func(id int) int
		lca = func(id int) int {
			if id == tree.NoNode || e.Stopped() {
				return tree.NoNode
			}
			v := w.t.Value(id)
			e.Emit(step.Highlight(2, 3), step.Visit(id), step.Vars(step.V("node", v), step.V("p", a), step.V("q", b)))
			if v == a || v == b {
				e.Emit(step.Mark(step.RoleFound, id))
				w.tag(id, step.RoleFound, fmt.Sprintf("found %d", v))
				return id
			}
			w.tag(id, step.RoleVisited, fmt.Sprintf("search below %d", v))
			e.Emit(step.Highlight(4))
			left := lca(w.t.Left(id))
			right := lca(w.t.Right(id))
			switch {
			case left != tree.NoNode && right != tree.NoNode:
				e.Emit(step.Highlight(5), step.Mark(step.RoleAncestor, id), step.Explain(fmt.Sprintf("%d has a match on both sides", v)))
				w.tag(id, step.RoleAncestor, fmt.Sprintf("ancestor %d", v))
				return id
			case left != tree.NoNode:
				e.Emit(step.Highlight(6))
				return left
			default:
				e.Emit(step.Highlight(6))
				return right
			}
		}

		id := lca(t.Root)
		if e.Stopped() {
			return
		}
		v := w.t.Value(id)
		if !e.Emit(step.Mark(step.RoleAncestor, id)) || !w.tag(id, step.RoleAncestor, fmt.Sprintf("LCA = %d", v)) {
			return
		}
		e.Finish(fmt.Sprintf("The lowest common ancestor of %d and %d is %d", a, b, v), step.ResultSearch, id, fmt.Sprintf("LCA = %d", v))
	}
}
