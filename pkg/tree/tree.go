// Package tree builds the binary trees consumed by the tree producers.
//
// A [Tree] is an explicit node list plus a root ID. Node IDs are stable: for
// trees built by [FromLevelOrder] a node's ID is the index of its slot in the
// level-order input, so tree events reference original input positions.
//
// Trees are values with copy-on-write methods. [Tree.SetHighlight],
// [Tree.ClearAllHighlights] and [Tree.Insert] return a new tree and never touch
// the receiver, which lets producers yield a snapshot and keep working
// without retroactively changing what the player already received.
package tree

import (
	"slices"

	"github.com/matzehuels/stepviz/pkg/step"
)

// NoNode marks an absent child or an empty tree's root.
const NoNode = step.NoNode

// Node is a binary tree node. Left and Right are node IDs or [NoNode].
type Node = step.Node

// Tree is an explicit node list with a root. The zero value is not an empty
// tree; use [Empty].
type Tree struct {
	Nodes []Node
	Root  int
}

// Empty returns a tree with no nodes.
func Empty() Tree {
	return Tree{Root: NoNode}
}

// IsEmpty reports whether the tree has no root.
func (t Tree) IsEmpty() bool {
	return t.Root == NoNode || len(t.Nodes) == 0
}

// Len returns the number of nodes.
func (t Tree) Len() int { return len(t.Nodes) }

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	return Tree{Nodes: slices.Clone(t.Nodes), Root: t.Root}
}

// Node returns the node with the given ID.
func (t Tree) Node(id int) (Node, bool) {
	if i := t.index(id); i >= 0 {
		return t.Nodes[i], true
	}
	return Node{}, false
}

// index returns the slice position of id, or -1.
func (t Tree) index(id int) int {
	if id == NoNode {
		return -1
	}
	// IDs equal slice positions for trees built by this package, check the
	// fast path first.
	if id >= 0 && id < len(t.Nodes) && t.Nodes[id].ID == id {
		return id
	}
	for i, n := range t.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Value returns the value stored at id.
func (t Tree) Value(id int) int {
	n, _ := t.Node(id)
	return n.Value
}

// Left returns the left child of id, or NoNode.
func (t Tree) Left(id int) int {
	if n, ok := t.Node(id); ok {
		return n.Left
	}
	return NoNode
}

// Right returns the right child of id, or NoNode.
func (t Tree) Right(id int) int {
	if n, ok := t.Node(id); ok {
		return n.Right
	}
	return NoNode
}

// SetHighlight returns a copy of t with node id tagged by role.
func (t Tree) SetHighlight(id int, role step.Role) Tree {
	c := t.Clone()
	if i := c.index(id); i >= 0 {
		c.Nodes[i].Role = role
	}
	return c
}

// ClearAllHighlights returns a copy of t with every role cleared.
func (t Tree) ClearAllHighlights() Tree {
	c := t.Clone()
	for i := range c.Nodes {
		c.Nodes[i].Role = step.RoleNone
	}
	return c
}

// Snapshot converts the tree into a self-contained auxiliary payload.
func (t Tree) Snapshot(order []int, status string) step.Snapshot {
	return step.Snapshot{
		Kind:   step.StructureTree,
		Nodes:  slices.Clone(t.Nodes),
		Root:   t.Root,
		Order:  slices.Clone(order),
		Status: status,
	}
}
