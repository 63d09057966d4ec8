package step

import "slices"

// NoNode marks an absent child or root.
const NoNode = -1

// StructureKind identifies what a [Snapshot] depicts.
type StructureKind string

// Structure kinds.
const (
	StructureTree  StructureKind = "tree"
	StructureGraph StructureKind = "graph"
	StructureTable StructureKind = "table"
	StructureStack StructureKind = "stack"
)

// Node is one vertex of a tree or graph snapshot. Left and Right are only
// used by trees and hold [NoNode] when the child is absent.
type Node struct {
	ID    int  `json:"id"`
	Value int  `json:"value"`
	Left  int  `json:"left"`
	Right int  `json:"right"`
	Role  Role `json:"role,omitempty"`
}

// Edge is an undirected graph edge between node IDs.
type Edge struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Role Role `json:"role,omitempty"`
}

// Snapshot is a self-contained rendering of a non-array structure.
//
// Trees use Nodes and Root, graphs use Nodes and Edges, tables and stacks use
// Cells. Order accumulates the traversal order so far and Status is free
// text for the player's status line.
type Snapshot struct {
	Kind   StructureKind `json:"kind"`
	Nodes  []Node        `json:"nodes,omitempty"`
	Edges  []Edge        `json:"edges,omitempty"`
	Root   int           `json:"root"`
	Cells  []string      `json:"cells,omitempty"`
	Marked []int         `json:"marked,omitempty"`
	Order  []int         `json:"order,omitempty"`
	Status string        `json:"status,omitempty"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	s.Nodes = slices.Clone(s.Nodes)
	s.Edges = slices.Clone(s.Edges)
	s.Cells = slices.Clone(s.Cells)
	s.Marked = slices.Clone(s.Marked)
	s.Order = slices.Clone(s.Order)
	return s
}

// Node returns the node with the given ID.
func (s Snapshot) Node(id int) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
