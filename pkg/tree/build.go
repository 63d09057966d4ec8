package tree

// FromLevelOrder builds a tree from a flat level-order array in which
// sentinel marks an absent child.
//
// Construction is breadth-first: the root consumes index 0, and each
// following pair of slots becomes the left and right child of the next node
// in BFS order. Sentinel slots are skipped; no placeholder nodes are created.
// Each node's ID is the index of its slot. Slots left over once the queue
// drains (children of absent nodes) are ignored.
func FromLevelOrder(values []int, sentinel int) Tree {
	if len(values) == 0 || values[0] == sentinel {
		return Empty()
	}

	t := Tree{Root: 0}
	// pos maps node IDs to slice positions while building.
	pos := make(map[int]int, len(values))
	add := func(id int) {
		pos[id] = len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{ID: id, Value: values[id], Left: NoNode, Right: NoNode})
	}

	add(0)
	queue := []int{0}
	next := 1
	for len(queue) > 0 && next < len(values) {
		parent := queue[0]
		queue = queue[1:]

		if values[next] != sentinel {
			add(next)
			t.Nodes[pos[parent]].Left = next
			queue = append(queue, next)
		}
		next++
		if next < len(values) {
			if values[next] != sentinel {
				add(next)
				t.Nodes[pos[parent]].Right = next
				queue = append(queue, next)
			}
			next++
		}
	}
	return t
}

// FromSorted builds a height-balanced BST from an ascending array by
// recursively choosing the middle element as each subtree's root. Node IDs
// are the indices into values.
func FromSorted(values []int) Tree {
	if len(values) == 0 {
		return Empty()
	}
	nodes := make([]Node, len(values))
	for i, v := range values {
		nodes[i] = Node{ID: i, Value: v, Left: NoNode, Right: NoNode}
	}
	var build func(lo, hi int) int
	build = func(lo, hi int) int {
		if lo > hi {
			return NoNode
		}
		mid := lo + (hi-lo)/2
		nodes[mid].Left = build(lo, mid-1)
		nodes[mid].Right = build(mid+1, hi)
		return mid
	}
	root := build(0, len(values)-1)
	return Tree{Nodes: nodes, Root: root}
}

// FromInsertions builds a BST by inserting values in order. Node i holds
// values[i]; duplicates go to the right subtree.
func FromInsertions(values []int) Tree {
	t := Empty()
	for _, v := range values {
		t, _, _ = t.Insert(v)
	}
	return t
}

// Insert returns a copy of t with value added as a new leaf, the ID of its
// parent (NoNode when the tree was empty) and the new node's ID. The new ID
// is the current node count. There is no rebalancing.
func (t Tree) Insert(value int) (Tree, int, int) {
	c := t.Clone()
	id := len(c.Nodes)
	c.Nodes = append(c.Nodes, Node{ID: id, Value: value, Left: NoNode, Right: NoNode})
	if c.Root == NoNode {
		c.Root = id
		return c, NoNode, id
	}

	cur := c.Root
	for {
		i := c.index(cur)
		if value < c.Nodes[i].Value {
			if c.Nodes[i].Left == NoNode {
				c.Nodes[i].Left = id
				return c, cur, id
			}
			cur = c.Nodes[i].Left
		} else {
			if c.Nodes[i].Right == NoNode {
				c.Nodes[i].Right = id
				return c, cur, id
			}
			cur = c.Nodes[i].Right
		}
	}
}
