package tree

import (
	"reflect"
	"testing"

	"github.com/matzehuels/stepviz/pkg/step"
)

func TestFromLevelOrder(t *testing.T) {
	tests := []struct {
		name       string
		values     []int
		wantLevel  []int // values in level order
		wantHeight int
	}{
		{"empty", nil, nil, -1},
		{"sentinel root", []int{-1, 2, 3}, nil, -1},
		{"single", []int{7}, []int{7}, 0},
		{"two levels", []int{1, 2, 3}, []int{1, 2, 3}, 1},
		{"missing left child", []int{1, 2, 3, -1, 5}, []int{1, 2, 3, 5}, 2},
		{"perfect", []int{5, 3, 7, 2, 4, 6, 8}, []int{5, 3, 7, 2, 4, 6, 8}, 2},
		{"left chain", []int{1, 2, -1, 3, -1, 4}, []int{1, 2, 3, 4}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FromLevelOrder(tt.values, -1)
			var got []int
			for _, id := range tr.LevelOrder() {
				got = append(got, tr.Value(id))
			}
			if !reflect.DeepEqual(got, tt.wantLevel) {
				t.Errorf("level order = %v, want %v", got, tt.wantLevel)
			}
			if h := tr.Height(); h != tt.wantHeight {
				t.Errorf("Height() = %d, want %d", h, tt.wantHeight)
			}
		})
	}
}

func TestFromLevelOrderIDsAreSlotIndices(t *testing.T) {
	tr := FromLevelOrder([]int{1, 2, 3, -1, 5}, -1)
	if tr.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tr.Len())
	}
	n, ok := tr.Node(4)
	if !ok || n.Value != 5 {
		t.Fatalf("Node(4) = %+v, %v; want value 5", n, ok)
	}
	if r := tr.Right(1); r != 4 {
		t.Errorf("Right(1) = %d, want 4", r)
	}
	if l := tr.Left(1); l != NoNode {
		t.Errorf("Left(1) = %d, want NoNode", l)
	}
	if _, ok := tr.Node(3); ok {
		t.Error("sentinel slot 3 should not produce a node")
	}
}

func TestFromSorted(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6, 7}
	tr := FromSorted(values)
	if tr.Value(tr.Root) != 4 {
		t.Errorf("root = %d, want median 4", tr.Value(tr.Root))
	}
	if h := tr.Height(); h != 2 {
		t.Errorf("Height() = %d, want 2", h)
	}
	if got := tr.InOrderValues(); !reflect.DeepEqual(got, values) {
		t.Errorf("InOrderValues() = %v, want %v", got, values)
	}
	if !FromSorted(nil).IsEmpty() {
		t.Error("FromSorted(nil) should be empty")
	}
}

func TestInsertKeepsBSTOrder(t *testing.T) {
	tr := FromInsertions([]int{50, 30, 70, 20, 40, 60, 80, 30})
	got := tr.InOrderValues()
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("in-order not sorted: %v", got)
		}
	}

	next, parent, id := tr.Insert(65)
	if tr.Len() != 8 {
		t.Errorf("Insert mutated receiver: Len() = %d", tr.Len())
	}
	if id != 8 {
		t.Errorf("new id = %d, want 8", id)
	}
	if next.Value(parent) != 60 {
		t.Errorf("parent value = %d, want 60", next.Value(parent))
	}
	if next.Right(parent) != id {
		t.Error("parent's right pointer was not patched")
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	tr, parent, id := Empty().Insert(9)
	if parent != NoNode || id != 0 || tr.Root != 0 {
		t.Errorf("Insert into empty = parent %d id %d root %d", parent, id, tr.Root)
	}
}

func TestHighlightIsCopyOnWrite(t *testing.T) {
	base := FromLevelOrder([]int{1, 2, 3}, -1)
	marked := base.SetHighlight(1, step.RoleVisited)
	snap := marked.Snapshot([]int{0}, "visiting")

	if n, _ := base.Node(1); n.Role != step.RoleNone {
		t.Errorf("SetHighlight mutated receiver: role %q", n.Role)
	}
	if n, _ := marked.Node(1); n.Role != step.RoleVisited {
		t.Errorf("role = %q, want visited", n.Role)
	}

	cleared := marked.ClearAllHighlights()
	if n, _ := cleared.Node(1); n.Role != step.RoleNone {
		t.Errorf("ClearAllHighlights left role %q", n.Role)
	}
	if n, _ := marked.Node(1); n.Role != step.RoleVisited {
		t.Error("ClearAllHighlights mutated its receiver")
	}
	if n, _ := snap.Node(1); n.Role != step.RoleVisited {
		t.Error("snapshot changed after a later highlight change")
	}
}

func TestFind(t *testing.T) {
	tr := FromInsertions([]int{8, 3, 10, 1, 6})
	if id, ok := tr.Find(6); !ok || tr.Value(id) != 6 {
		t.Errorf("Find(6) = %d, %v", id, ok)
	}
	if _, ok := tr.Find(7); ok {
		t.Error("Find(7) should miss")
	}
	if !tr.Contains(10) || tr.Contains(11) {
		t.Error("Contains mismatch")
	}
}
