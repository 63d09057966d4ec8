package trees

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

// BST operations.
const (
	OpInsert  = "insert"
	OpSearch  = "search"
	OpFindMin = "findMin"
	OpFindMax = "findMax"
)

// How the starting tree is built.
const (
	BuildInsertion = "insertion"
	BuildBalanced  = "balanced"
)

// bstOptions is the decoded parameter record of [BSTOperations].
type bstOptions struct {
	Operation string `param:"operation"`
	Value     int    `param:"value"`
	Build     string `param:"build"`
}

func defaultBSTOptions() bstOptions {
	return bstOptions{Operation: OpSearch, Build: BuildInsertion}
}

// bstOptionsOf decodes p over the defaults. Start checks p against the
// schema first, so only direct Run calls with bad values get the defaults.
func bstOptionsOf(p catalog.Params) bstOptions {
	opts := defaultBSTOptions()
	if err := p.Decode(&opts); err != nil {
		return defaultBSTOptions()
	}
	return opts
}

// build returns the starting tree. Balanced trees come from the sorted
// values, so node IDs index the sorted order.
func (o bstOptions) build(values []int) tree.Tree {
	if o.Build == BuildBalanced {
		return tree.FromSorted(slices.Sorted(slices.Values(values)))
	}
	return tree.FromInsertions(values)
}

// BSTOperations builds a BST by inserting the input values in order (or,
// with build=balanced, by median split of the sorted values), then performs
// one operation on it. The tree is not self-balancing.
var BSTOperations = &catalog.Descriptor{
	ID:         "bstOperations",
	Name:       "BST Operations",
	Category:   catalog.CategoryTrees,
	Difficulty: catalog.Intermediate,
	Complexity: catalog.Complexity{Best: "O(log n)", Average: "O(log n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Descends a binary search tree by comparing against each node: smaller values go left, " +
		"larger or equal values go right. Insert adds a leaf and patches its parent's child pointer.",
	Pseudocode: []string{
		"node = root",
		"while node is not null:",
		"  if value == node.value: return node",
		"  if value < node.value: node = node.left",
		"  else: node = node.right",
		"insert: attach new leaf to the last node",
		"findMin: follow left children to the end",
		"findMax: follow right children to the end",
	},
	Params: []catalog.Param{
		catalog.Select("operation", "Operation", OpSearch, OpInsert, OpSearch, OpFindMin, OpFindMax),
		catalog.Number("value", "Value", 0, -999, 999).When("operation", OpInsert, OpSearch),
		catalog.Select("build", "Build", BuildInsertion, BuildInsertion, BuildBalanced),
	},
	Validate: catalog.BSTInput(0),
	Run:      bstOperations,
	// Insert creates node len(Values).
	Positions: func(in catalog.Input, p catalog.Params) int {
		if bstOptionsOf(p).Operation == OpInsert {
			return len(in.Values) + 1
		}
		return len(in.Values)
	},
	Sample:       catalog.Input{Values: []int{50, 30, 70, 20, 40, 60, 80}},
	SampleParams: catalog.Params{"operation": OpInsert, "value": 65},
}

func bstOperations(in catalog.Input, p catalog.Params) step.Seq {
	opts := bstOptionsOf(p)
	value := opts.Value
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		w := newWalker(e, opts.build(in.Values))
		built := fmt.Sprintf("BST built from %d insertions", len(in.Values))
		if opts.Build == BuildBalanced {
			built = fmt.Sprintf("Balanced BST built from %d sorted values", len(in.Values))
		}
		if !e.Emit(step.Info(built)) || !w.show("built") {
			return
		}

		switch opts.Operation {
		case OpInsert:
			w.insert(value)
		case OpFindMin:
			w.extreme(true)
		case OpFindMax:
			w.extreme(false)
		default:
			w.search(value)
		}
	}
}

// descend walks from the root towards value, stopping at a match when
// stopOnMatch is set. It returns the last node reached and whether it holds
// value.
func (w *walker) descend(value int, stopOnMatch bool) (int, bool) {
	cur, last := w.t.Root, tree.NoNode
	for cur != tree.NoNode {
		v := w.t.Value(cur)
		if !w.e.Emit(
			step.Highlight(2),
			step.Visit(cur),
			step.Vars(step.V("value", value), step.V("node", v)),
		) || !w.tag(cur, step.RoleCurrent, fmt.Sprintf("compare %d with %d", value, v)) {
			return tree.NoNode, false
		}
		if stopOnMatch && value == v {
			w.e.Emit(step.Highlight(3))
			return cur, true
		}
		w.t = w.t.SetHighlight(cur, step.RoleVisited)
		last = cur
		if value < v {
			w.e.Emit(step.Highlight(4), step.Explain(fmt.Sprintf("%d < %d, go left", value, v)))
			cur = w.t.Left(cur)
		} else {
			w.e.Emit(step.Highlight(5), step.Explain(fmt.Sprintf("%d >= %d, go right", value, v)))
			cur = w.t.Right(cur)
		}
		if w.e.Stopped() {
			return tree.NoNode, false
		}
	}
	return last, false
}

func (w *walker) search(value int) {
	if w.t.IsEmpty() {
		empty(w.e, step.ResultSearch, -1, "not found")
		return
	}
	id, found := w.descend(value, true)
	if w.e.Stopped() {
		return
	}
	if !found {
		w.e.Finish(fmt.Sprintf("%d is not in the tree", value), step.ResultSearch, -1, "not found")
		return
	}
	if !w.e.Emit(step.Mark(step.RoleFound, id)) || !w.tag(id, step.RoleFound, "found") {
		return
	}
	w.e.Finish(fmt.Sprintf("Found %d", value), step.ResultSearch, id, fmt.Sprintf("node %d", id))
}

func (w *walker) insert(value int) {
	parent, _ := w.descend(value, false)
	if w.e.Stopped() {
		return
	}
	var id int
	w.t, _, id = w.t.Insert(value)
	status := fmt.Sprintf("inserted %d as the root", value)
	if parent != tree.NoNode {
		side := "right"
		if w.t.Left(parent) == id {
			side = "left"
		}
		status = fmt.Sprintf("inserted %d as %s child of %d", value, side, w.t.Value(parent))
	}
	if !w.e.Emit(step.Highlight(6), step.Mark(step.RoleFound, id), step.Progress(status)) || !w.tag(id, step.RoleFound, status) {
		return
	}
	w.e.Finish(fmt.Sprintf("Inserted %d", value), step.ResultIndices, w.t.InOrderValues(), "in-order after insert")
}

// extreme follows left (min) or right (max) children to the end.
func (w *walker) extreme(leftmost bool) {
	name, line := "maximum", 8
	if leftmost {
		name, line = "minimum", 7
	}
	if w.t.IsEmpty() {
		empty(w.e, step.ResultSearch, -1, "no "+name)
		return
	}
	cur := w.t.Root
	for {
		if !w.e.Emit(step.Highlight(line), step.Visit(cur)) || !w.tag(cur, step.RoleCurrent, fmt.Sprintf("at %d", w.t.Value(cur))) {
			return
		}
		next := w.t.Right(cur)
		if leftmost {
			next = w.t.Left(cur)
		}
		if next == tree.NoNode {
			break
		}
		w.t = w.t.SetHighlight(cur, step.RoleVisited)
		cur = next
	}
	v := w.t.Value(cur)
	if !w.e.Emit(step.Mark(step.RoleFound, cur)) || !w.tag(cur, step.RoleFound, fmt.Sprintf("%s is %d", name, v)) {
		return
	}
	w.e.Finish(fmt.Sprintf("The %s is %d", name, v), step.ResultNumber, v, name)
}
