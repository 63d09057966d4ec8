// Package graphs provides breadth-first and depth-first traversal of small
// undirected graphs.
//
// Input Values are node labels, one per node, and Edges connect node
// indices. Neighbors are visited in ascending index order so runs are
// deterministic regardless of the order edges were typed in. The result is
// the visitation order as node indices.
package graphs

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the graph algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	BFS,
	DFS,
}

var sample = catalog.Input{
	Values: []int{0, 1, 2, 3, 4, 5, 6},
	Edges:  [][2]int{{0, 1}, {0, 2}, {1, 3}, {1, 4}, {2, 5}, {4, 6}, {5, 6}},
}

func startParam() catalog.Param {
	return catalog.Number("start", "Start node", 0, 0, 31)
}

// graph is the adjacency view of an input plus the evolving roles shown in
// snapshots.
type graph struct {
	labels []int
	edges  [][2]int
	adj    [][]int
	roles  []step.Role
	used   map[[2]int]bool
	order  []int
}

func newGraph(in catalog.Input) *graph {
	n := len(in.Values)
	g := &graph{
		labels: in.Values,
		edges:  in.Edges,
		adj:    make([][]int, n),
		roles:  make([]step.Role, n),
		used:   make(map[[2]int]bool),
	}
	for _, e := range in.Edges {
		g.adj[e[0]] = append(g.adj[e[0]], e[1])
		g.adj[e[1]] = append(g.adj[e[1]], e[0])
	}
	for i := range g.adj {
		slices.Sort(g.adj[i])
		g.adj[i] = slices.Compact(g.adj[i])
	}
	return g
}

// useEdge records the edge a->b as part of the traversal tree.
func (g *graph) useEdge(a, b int) {
	g.used[[2]int{min(a, b), max(a, b)}] = true
}

// snapshot renders every node and edge with its current role.
func (g *graph) snapshot(status string) step.Snapshot {
	s := step.Snapshot{Kind: step.StructureGraph, Root: step.NoNode, Status: status}
	for i, v := range g.labels {
		s.Nodes = append(s.Nodes, step.Node{ID: i, Value: v, Left: step.NoNode, Right: step.NoNode, Role: g.roles[i]})
	}
	for _, e := range g.edges {
		edge := step.Edge{From: e[0], To: e[1]}
		if g.used[[2]int{min(e[0], e[1]), max(e[0], e[1])}] {
			edge.Role = step.RoleVisited
		}
		s.Edges = append(s.Edges, edge)
	}
	s.Order = slices.Clone(g.order)
	return s
}

// begin checks the start node and emits the opening narration. It returns
// false when the run is over.
func begin(e *step.Emitter, g *graph, name string, start int) bool {
	if start < 0 || start >= len(g.labels) {
		e.Finish(fmt.Sprintf("Start node %d does not exist", start), step.ResultIndices, []int{}, "visit order")
		return false
	}
	return e.Emit(
		step.Info(fmt.Sprintf("%s from node %d over %d nodes and %d edges", name, start, len(g.labels), len(g.edges))),
		step.Auxiliary(g.snapshot("start")),
	)
}
