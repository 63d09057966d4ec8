package graphs

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// DFS follows each branch as deep as possible before backtracking.
var DFS = &catalog.Descriptor{
	ID:          "dfs",
	Name:        "Depth-First Search",
	Category:    catalog.CategoryGraphs,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(V + E)", Average: "O(V + E)", Worst: "O(V + E)", Space: "O(V)"},
	Description: "Dives along one path until it runs out of unvisited neighbors, then backtracks.",
	Pseudocode: []string{
		"dfs(node):",
		"  visit(node); seen.add(node)",
		"  for each neighbor of node:",
		"    if neighbor not in seen: dfs(neighbor)",
		"  backtrack",
	},
	Params:       []catalog.Param{startParam()},
	Validate:     catalog.GraphInput(),
	Run:          dfs,
	Sample:       sample,
	SampleParams: catalog.Params{"start": 0},
}

func dfs(in catalog.Input, p catalog.Params) step.Seq {
	start := p.Int("start", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		g := newGraph(in)
		if !begin(e, g, "DFS", start) {
			return
		}

		seen := make([]bool, len(g.labels))
		var path []int
		var walk func(node int)
		walk = func(node int) {
			if e.Stopped() {
				return
			}
			seen[node] = true
			path = append(path, node)
			g.order = append(g.order, node)
			g.roles[node] = step.RoleCurrent
			if !e.Emit(
				step.Highlight(1, 2),
				step.Visit(node),
				step.Vars(step.V("path", path)),
				step.Auxiliary(g.snapshot(fmt.Sprintf("visit %d", node))),
			) {
				return
			}
			g.roles[node] = step.RoleAncestor
			for _, nb := range g.adj[node] {
				if !e.Emit(step.Highlight(3, 4), step.Compare(node, nb, step.RelNone)) {
					return
				}
				if seen[nb] {
					continue
				}
				g.useEdge(node, nb)
				walk(nb)
				if e.Stopped() {
					return
				}
			}
			path = path[:len(path)-1]
			g.roles[node] = step.RoleVisited
			e.Emit(step.Highlight(5), step.Mark(step.RoleVisited, node), step.Auxiliary(g.snapshot(fmt.Sprintf("backtrack from %d", node))))
		}

		walk(start)
		if e.Stopped() {
			return
		}
		e.Finish(fmt.Sprintf("Reached %d of %d nodes", len(g.order), len(g.labels)), step.ResultIndices, g.order, "visit order")
	}
}
