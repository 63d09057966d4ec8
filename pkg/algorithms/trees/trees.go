// Package trees provides step producers for binary tree algorithms.
//
// Input is a level-order array in which -1 marks an absent child, e.g.
// "1, 2, 3, -1, 5". The tree is built with [tree.FromLevelOrder], so every
// node ID is the index of its slot and visit events point at original input
// positions. The BST operations instead insert the input values one by one,
// giving node i the value of input i.
//
// Every producer emits a full auxiliary snapshot whenever a node's role
// changes. Snapshots are taken from copy-on-write trees, so a snapshot the
// player already holds never changes afterwards.
package trees

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

// Descriptors lists the tree algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	BSTOperations,
	PreorderTraversal,
	InorderTraversal,
	PostorderTraversal,
	LevelOrderTraversal,
	IsBST,
	IsBalanced,
	TreeHeight,
	LowestCommonAncestor,
}

var sample = catalog.Input{Values: []int{5, 3, 7, 2, 4, 6, 8}}

// build converts level-order input into a tree.
func build(in catalog.Input) tree.Tree {
	return tree.FromLevelOrder(in.Values, errors.Sentinel)
}

// walker holds the evolving tree and the traversal accumulator of one run.
type walker struct {
	e     *step.Emitter
	t     tree.Tree
	order []int
}

func newWalker(e *step.Emitter, t tree.Tree) *walker {
	return &walker{e: e, t: t}
}

// show emits the current tree as a self-contained snapshot.
func (w *walker) show(status string) bool {
	return w.e.Emit(step.Auxiliary(w.t.Snapshot(w.order, status)))
}

// tag sets id's role and shows the result.
func (w *walker) tag(id int, role step.Role, status string) bool {
	w.t = w.t.SetHighlight(id, role)
	return w.show(status)
}

// visit appends id to the traversal order, narrating it at line.
func (w *walker) visit(id, line int) bool {
	v := w.t.Value(id)
	w.order = append(w.order, v)
	w.t = w.t.SetHighlight(id, step.RoleCurrent)
	ok := w.e.Emit(
		step.Highlight(line),
		step.Visit(id),
		step.Auxiliary(w.t.Snapshot(w.order, fmt.Sprintf("visit %d", v))),
	)
	w.t = w.t.SetHighlight(id, step.RoleVisited)
	return ok
}

// values maps node IDs to their values, for stack and queue displays.
func (w *walker) values(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = w.t.Value(id)
	}
	return out
}

// empty ends a run on an empty tree.
func empty(e *step.Emitter, kind step.ResultKind, value any, label string) {
	if !e.Emit(step.Auxiliary(tree.Empty().Snapshot(nil, "empty tree"))) {
		return
	}
	e.Finish("The tree is empty", kind, value, label)
}

// bound is an optional value limit, printed as ±∞ when unset.
type bound struct {
	value int
	set   bool
}

func (b bound) format(inf string) string {
	if !b.set {
		return inf
	}
	return fmt.Sprint(b.value)
}
