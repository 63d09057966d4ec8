package graphs

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// BFS visits nodes in order of their distance from the start node.
var BFS = &catalog.Descriptor{
	ID:          "bfs",
	Name:        "Breadth-First Search",
	Category:    catalog.CategoryGraphs,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(V + E)", Average: "O(V + E)", Worst: "O(V + E)", Space: "O(V)"},
	Description: "Explores the graph in rings around the start node using a FIFO queue.",
	Pseudocode: []string{
		"queue = [start]; seen = {start}",
		"while queue is not empty:",
		"  node = dequeue(); visit(node)",
		"  for each neighbor of node:",
		"    if neighbor not in seen:",
		"      seen.add(neighbor); enqueue(neighbor)",
	},
	Params:       []catalog.Param{startParam()},
	Validate:     catalog.GraphInput(),
	Run:          bfs,
	Sample:       sample,
	SampleParams: catalog.Params{"start": 0},
}

func bfs(in catalog.Input, p catalog.Params) step.Seq {
	start := p.Int("start", 0)
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		g := newGraph(in)
		if !begin(e, g, "BFS", start) {
			return
		}

		seen := make([]bool, len(g.labels))
		seen[start] = true
		queue := []int{start}
		g.roles[start] = step.RoleWindow
		if !e.Emit(step.Highlight(1), step.Mark(step.RoleWindow, start)) {
			return
		}
		for len(queue) > 0 {
			if !e.Emit(step.Highlight(2), step.Vars(step.V("queue", queue))) {
				return
			}
			node := queue[0]
			queue = queue[1:]
			g.order = append(g.order, node)
			g.roles[node] = step.RoleCurrent
			if !e.Emit(step.Highlight(3), step.Visit(node), step.Auxiliary(g.snapshot(fmt.Sprintf("visit %d", node)))) {
				return
			}
			for _, nb := range g.adj[node] {
				if !e.Emit(step.Highlight(4, 5), step.Compare(node, nb, step.RelNone)) {
					return
				}
				if seen[nb] {
					continue
				}
				seen[nb] = true
				queue = append(queue, nb)
				g.useEdge(node, nb)
				g.roles[nb] = step.RoleWindow
				if !e.Emit(step.Highlight(6), step.Mark(step.RoleWindow, nb), step.Auxiliary(g.snapshot(fmt.Sprintf("enqueue %d", nb)))) {
					return
				}
			}
			g.roles[node] = step.RoleVisited
			if !e.Emit(step.Mark(step.RoleVisited, node)) {
				return
			}
		}
		if !e.Emit(step.Auxiliary(g.snapshot("done"))) {
			return
		}
		e.Finish(fmt.Sprintf("Reached %d of %d nodes", len(g.order), len(g.labels)), step.ResultIndices, g.order, "visit order")
	}
}
