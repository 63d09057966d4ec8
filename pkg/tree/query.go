package tree

// InOrder returns node IDs in in-order sequence.
func (t Tree) InOrder() []int {
	var out []int
	var walk func(id int)
	walk = func(id int) {
		if id == NoNode {
			return
		}
		walk(t.Left(id))
		out = append(out, id)
		walk(t.Right(id))
	}
	walk(t.Root)
	return out
}

// InOrderValues returns node values in in-order sequence.
func (t Tree) InOrderValues() []int {
	ids := t.InOrder()
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = t.Value(id)
	}
	return out
}

// LevelOrder returns node IDs in breadth-first order.
func (t Tree) LevelOrder() []int {
	if t.IsEmpty() {
		return nil
	}
	var out []int
	queue := []int{t.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		if l := t.Left(id); l != NoNode {
			queue = append(queue, l)
		}
		if r := t.Right(id); r != NoNode {
			queue = append(queue, r)
		}
	}
	return out
}

// Height returns the number of edges on the longest root-to-leaf path.
// An empty tree has height -1.
func (t Tree) Height() int {
	return t.heightOf(t.Root)
}

func (t Tree) heightOf(id int) int {
	if id == NoNode {
		return -1
	}
	return 1 + max(t.heightOf(t.Left(id)), t.heightOf(t.Right(id)))
}

// Find descends the tree as a BST and returns the ID holding value.
func (t Tree) Find(value int) (int, bool) {
	cur := t.Root
	for cur != NoNode {
		v := t.Value(cur)
		switch {
		case value == v:
			return cur, true
		case value < v:
			cur = t.Left(cur)
		default:
			cur = t.Right(cur)
		}
	}
	return NoNode, false
}

// Contains reports whether any node holds value, without assuming BST order.
func (t Tree) Contains(value int) bool {
	for _, n := range t.Nodes {
		if n.Value == value {
			return true
		}
	}
	return false
}
