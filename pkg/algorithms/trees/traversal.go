package trees

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

// Traversal methods.
const (
	MethodRecursive = "recursive"
	MethodIterative = "iterative"
)

type order int

const (
	preorder order = iota
	inorder
	postorder
	levelorder
)

// Traversal descriptors. Recursive and iterative methods yield the same
// result ordering; only the narration differs.
var (
	PreorderTraversal = traversal(preorder, "preorderTraversal", "Preorder Traversal",
		"Visits a node before its subtrees: node, left, right.",
		[]string{
			"preorder(node):",
			"  if node is null: return",
			"  visit(node)",
			"  preorder(node.left); preorder(node.right)",
			"iterative: stack = [root]",
			"  while stack: node = pop(); visit(node)",
			"    push(node.right); push(node.left)",
		})
	InorderTraversal = traversal(inorder, "inorderTraversal", "Inorder Traversal",
		"Visits the left subtree, then the node, then the right subtree. On a BST this yields sorted order.",
		[]string{
			"inorder(node):",
			"  if node is null: return",
			"  inorder(node.left)",
			"  visit(node); inorder(node.right)",
			"iterative: cur = root",
			"  while cur or stack: push left spine of cur",
			"    node = pop(); visit(node); cur = node.right",
		})
	PostorderTraversal = traversal(postorder, "postorderTraversal", "Postorder Traversal",
		"Visits both subtrees before the node itself: left, right, node.",
		[]string{
			"postorder(node):",
			"  if node is null: return",
			"  postorder(node.left); postorder(node.right)",
			"  visit(node)",
			"iterative: walk left, peek top of stack",
			"  if top.right unvisited: cur = top.right",
			"    else: visit(pop())",
		})
	LevelOrderTraversal = traversal(levelorder, "levelOrderTraversal", "Level Order Traversal",
		"Visits nodes level by level from the root, left to right.",
		[]string{
			"levelOrder(root):",
			"  for level from 0 to height:",
			"    visitLevel(root, level)",
			"  visitLevel: level 0 visits the node, else recurse into children",
			"iterative: queue = [root]",
			"  while queue: node = dequeue(); visit(node)",
			"    enqueue(node.left); enqueue(node.right)",
		})
)

func traversal(o order, id, name, desc string, pseudo []string) *catalog.Descriptor {
	complexity := catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(h)"}
	if o == levelorder {
		complexity.Space = "O(w)"
	}
	return &catalog.Descriptor{
		ID:          id,
		Name:        name,
		Category:    catalog.CategoryTrees,
		Difficulty:  catalog.Beginner,
		Complexity:  complexity,
		Description: desc,
		Pseudocode:  pseudo,
		Params: []catalog.Param{
			catalog.Select("method", "Method", MethodRecursive, MethodRecursive, MethodIterative),
		},
		Validate: catalog.TreeInput(),
		Run: func(in catalog.Input, p catalog.Params) step.Seq {
			return traverse(o, name, in, p.String("method", MethodRecursive) == MethodIterative)
		},
		Sample:       sample,
		SampleParams: catalog.Params{"method": MethodRecursive},
	}
}

func traverse(o order, name string, in catalog.Input, iterative bool) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		t := build(in)
		label := "visit order"
		if t.IsEmpty() {
			empty(e, step.ResultIndices, []int{}, label)
			return
		}

		w := newWalker(e, t)
		method := MethodRecursive
		if iterative {
			method = MethodIterative
		}
		if !e.Emit(step.Info(fmt.Sprintf("%s, %s, over %d nodes", name, method, t.Len()))) || !w.show("start") {
			return
		}

		switch {
		case iterative && o == preorder:
			w.preorderIterative()
		case iterative && o == inorder:
			w.inorderIterative()
		case iterative && o == postorder:
			w.postorderIterative()
		case iterative && o == levelorder:
			w.levelOrderIterative()
		case o == levelorder:
			w.levelOrderRecursive()
		default:
			w.recursive(o, t.Root)
		}
		if e.Stopped() {
			return
		}
		w.t = w.t.ClearAllHighlights()
		if !w.show("done") {
			return
		}
		e.Finish(fmt.Sprintf("Visited %d nodes", len(w.order)), step.ResultIndices, w.order, label)
	}
}

func (w *walker) recursive(o order, id int) {
	if id == tree.NoNode || w.e.Stopped() {
		return
	}
	switch o {
	case preorder:
		w.visit(id, 3)
		w.e.Emit(step.Highlight(4))
		w.recursive(o, w.t.Left(id))
		w.recursive(o, w.t.Right(id))
	case inorder:
		w.e.Emit(step.Highlight(3))
		w.recursive(o, w.t.Left(id))
		w.visit(id, 4)
		w.recursive(o, w.t.Right(id))
	case postorder:
		w.e.Emit(step.Highlight(3))
		w.recursive(o, w.t.Left(id))
		w.recursive(o, w.t.Right(id))
		w.visit(id, 4)
	}
}

func (w *walker) stackVars(stack []int) step.Event {
	return step.Vars(step.V("stack", w.values(stack)))
}

func (w *walker) preorderIterative() {
	stack := []int{w.t.Root}
	for len(stack) > 0 {
		if !w.e.Emit(step.Highlight(5), w.stackVars(stack)) {
			return
		}
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !w.visit(id, 6) {
			return
		}
		if r := w.t.Right(id); r != tree.NoNode {
			stack = append(stack, r)
		}
		if l := w.t.Left(id); l != tree.NoNode {
			stack = append(stack, l)
		}
		if !w.e.Emit(step.Highlight(7)) {
			return
		}
	}
}

func (w *walker) inorderIterative() {
	var stack []int
	cur := w.t.Root
	for cur != tree.NoNode || len(stack) > 0 {
		for cur != tree.NoNode {
			stack = append(stack, cur)
			cur = w.t.Left(cur)
		}
		if !w.e.Emit(step.Highlight(6), w.stackVars(stack)) {
			return
		}
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !w.visit(id, 7) {
			return
		}
		cur = w.t.Right(id)
	}
}

func (w *walker) postorderIterative() {
	var stack []int
	cur, last := w.t.Root, tree.NoNode
	for cur != tree.NoNode || len(stack) > 0 {
		if cur != tree.NoNode {
			stack = append(stack, cur)
			cur = w.t.Left(cur)
			continue
		}
		if !w.e.Emit(step.Highlight(5), w.stackVars(stack)) {
			return
		}
		top := stack[len(stack)-1]
		if r := w.t.Right(top); r != tree.NoNode && r != last {
			if !w.e.Emit(step.Highlight(6)) {
				return
			}
			cur = r
			continue
		}
		if !w.visit(top, 7) {
			return
		}
		last = top
		stack = stack[:len(stack)-1]
	}
}

func (w *walker) levelOrderIterative() {
	queue := []int{w.t.Root}
	for len(queue) > 0 {
		if !w.e.Emit(step.Highlight(5), step.Vars(step.V("queue", w.values(queue)))) {
			return
		}
		id := queue[0]
		queue = queue[1:]
		if !w.visit(id, 6) {
			return
		}
		if l := w.t.Left(id); l != tree.NoNode {
			queue = append(queue, l)
		}
		if r := w.t.Right(id); r != tree.NoNode {
			queue = append(queue, r)
		}
		if !w.e.Emit(step.Highlight(7)) {
			return
		}
	}
}

func (w *walker) levelOrderRecursive() {
	height := w.t.Height()
	var visitLevel func(id, level int)
	visitLevel = func(id, level int) {
		if id == tree.NoNode || w.e.Stopped() {
			return
		}
		if level == 0 {
			w.visit(id, 4)
			return
		}
		visitLevel(w.t.Left(id), level-1)
		visitLevel(w.t.Right(id), level-1)
	}
	for level := 0; level <= height; level++ {
		if !w.e.Emit(step.Highlight(2, 3), step.Vars(step.V("level", level))) {
			return
		}
		visitLevel(w.t.Root, level)
	}
}
