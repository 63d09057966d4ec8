package trees

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/tree"
)

func run(t *testing.T, d *catalog.Descriptor, values []int, params catalog.Params) []step.Event {
	t.Helper()
	in := catalog.Input{Values: values}
	seq, err := d.Start(in, params, catalog.DefaultLimits())
	if err != nil {
		t.Fatalf("%s: Start() error = %v", d.ID, err)
	}
	events := step.Collect(seq)
	if err := step.CheckTrace(events, d.PositionCount(in, params)); err != nil {
		t.Fatalf("%s: CheckTrace() = %v", d.ID, err)
	}
	return events
}

func result(t *testing.T, d *catalog.Descriptor, values []int, params catalog.Params) step.Event {
	t.Helper()
	res, _ := step.Last(run(t, d, values, params))
	return res
}

func TestExampleScenarios(t *testing.T) {
	tests := []struct {
		name     string
		desc     *catalog.Descriptor
		values   []int
		wantKind step.ResultKind
		want     any
	}{
		{"valid BST", IsBST, []int{5, 3, 7, 2, 4, 6, 8}, step.ResultBoolean, true},
		{"deep violation", IsBST, []int{5, 3, 7, 2, 8, 6, 9}, step.ResultBoolean, false},
		{"duplicate is not strict", IsBST, []int{5, 5}, step.ResultBoolean, false},
		{"height of two levels", TreeHeight, []int{1, 2, 3}, step.ResultSearch, 1},
		{"height of single node", TreeHeight, []int{1}, step.ResultSearch, 0},
		{"height of empty tree", TreeHeight, []int{-1}, step.ResultSearch, -1},
		{"level order skips sentinels", LevelOrderTraversal, []int{1, 2, 3, -1, 5}, step.ResultIndices, []int{1, 2, 3, 5}},
		{"empty tree is balanced", IsBalanced, nil, step.ResultBoolean, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := result(t, tt.desc, tt.values, nil)
			if res.ResultKind != tt.wantKind || !reflect.DeepEqual(res.Value, tt.want) {
				t.Errorf("result = (%s, %v), want (%s, %v)", res.ResultKind, res.Value, tt.wantKind, tt.want)
			}
		})
	}
}

func TestTraversalMethodsAgree(t *testing.T) {
	trees := [][]int{
		{5, 3, 7, 2, 4, 6, 8},
		{1, 2, 3, -1, 5},
		{1, -1, 2, -1, 3, -1, 4},
		{1, 2, -1, 3, -1, 4},
		{9},
		{3, 5, 1, 6, 2, 0, 8, -1, -1, 7, 4},
	}
	want := map[string][]int{
		"preorderTraversal":   {5, 3, 2, 4, 7, 6, 8},
		"inorderTraversal":    {2, 3, 4, 5, 6, 7, 8},
		"postorderTraversal":  {2, 4, 3, 6, 8, 7, 5},
		"levelOrderTraversal": {5, 3, 7, 2, 4, 6, 8},
	}

	for _, d := range []*catalog.Descriptor{PreorderTraversal, InorderTraversal, PostorderTraversal, LevelOrderTraversal} {
		for i, values := range trees {
			rec := result(t, d, values, catalog.Params{"method": MethodRecursive})
			it := result(t, d, values, catalog.Params{"method": MethodIterative})
			if !reflect.DeepEqual(rec.Value, it.Value) {
				t.Errorf("%s tree %d: recursive %v != iterative %v", d.ID, i, rec.Value, it.Value)
			}
			if i == 0 && !reflect.DeepEqual(rec.Value, want[d.ID]) {
				t.Errorf("%s = %v, want %v", d.ID, rec.Value, want[d.ID])
			}
		}
	}
}

func TestInsertKeepsInOrderSorted(t *testing.T) {
	values := []int{}
	for _, v := range []int{50, 30, 70, 20, 40, 60, 80, 35, 30, 90} {
		res := result(t, BSTOperations, values, catalog.Params{"operation": OpInsert, "value": v})
		got := res.Value.([]int)
		if !slices.IsSorted(got) {
			t.Fatalf("in-order after inserting %d = %v", v, got)
		}
		if len(got) != len(values)+1 {
			t.Fatalf("in-order has %d values, want %d", len(got), len(values)+1)
		}
		values = append(values, v)
	}
}

func TestInsertPatchesParent(t *testing.T) {
	events := run(t, BSTOperations, []int{50, 30, 70}, catalog.Params{"operation": OpInsert, "value": 65})
	var snap *step.Snapshot
	for _, ev := range events {
		if ev.Kind == step.KindAuxiliary {
			snap = ev.Snapshot
		}
	}
	if snap == nil {
		t.Fatal("no snapshot")
	}
	parent, _ := snap.Node(2)
	if parent.Value != 70 || parent.Left != 3 {
		t.Errorf("parent = %+v, want 70 with left child 3", parent)
	}
}

func TestFindMinMax(t *testing.T) {
	values := []int{8, 3, 10, 1, 6, 14, 4, 7, 13}
	if res := result(t, BSTOperations, values, catalog.Params{"operation": OpFindMin}); res.Value != 1 {
		t.Errorf("findMin = %v, want 1", res.Value)
	}
	if res := result(t, BSTOperations, values, catalog.Params{"operation": OpFindMax}); res.Value != 14 {
		t.Errorf("findMax = %v, want 14", res.Value)
	}

	sorted := []int{1, 2, 3, 4, 5}
	if res := result(t, BSTOperations, sorted, catalog.Params{"operation": OpFindMin}); res.Value != tree.FromInsertions(sorted).Value(0) {
		t.Errorf("findMin on sorted insertions = %v", res.Value)
	}
}

func TestBSTSearch(t *testing.T) {
	values := []int{8, 3, 10, 1, 6}
	if res := result(t, BSTOperations, values, catalog.Params{"operation": OpSearch, "value": 6}); res.Value != 4 {
		t.Errorf("search(6) = %v, want node 4", res.Value)
	}
	if res := result(t, BSTOperations, values, catalog.Params{"operation": OpSearch, "value": 7}); res.Value != -1 {
		t.Errorf("search(7) = %v, want -1", res.Value)
	}

	events := run(t, BSTOperations, nil, catalog.Params{"operation": OpSearch, "value": 1})
	if len(events) < 2 || events[len(events)-2].Kind != step.KindMessage {
		t.Errorf("empty tree search should end with message + result, got %v", events)
	}
}

func TestBalancedBuild(t *testing.T) {
	values := []int{6, 1, 7, 3, 2, 5, 4}
	balanced := catalog.Params{"build": BuildBalanced}

	events := run(t, BSTOperations, values, catalog.Params{"build": BuildBalanced, "value": 5})
	for _, ev := range events {
		if ev.Kind == step.KindVisit {
			if ev.Indices[0] != 3 {
				t.Errorf("descent starts at node %d, want the median 3", ev.Indices[0])
			}
			break
		}
	}
	if res, _ := step.Last(events); res.Value != 4 {
		t.Errorf("search(5) = %v, want node 4 (index in sorted order)", res.Value)
	}

	balanced["operation"] = OpFindMin
	if res := result(t, BSTOperations, values, balanced); res.Value != 1 {
		t.Errorf("findMin = %v, want 1", res.Value)
	}

	res := result(t, BSTOperations, values, catalog.Params{"build": BuildBalanced, "operation": OpInsert, "value": 0})
	if want := []int{0, 1, 2, 3, 4, 5, 6, 7}; !reflect.DeepEqual(res.Value, want) {
		t.Errorf("in-order after insert = %v, want %v", res.Value, want)
	}
}

func TestParamsFromFlags(t *testing.T) {
	values := []int{8, 3, 10, 1, 6}
	if res := result(t, BSTOperations, values, catalog.Params{"operation": OpSearch, "value": "6"}); res.Value != 4 {
		t.Errorf("search(\"6\") = %v, want node 4", res.Value)
	}
	lca := result(t, LowestCommonAncestor, LowestCommonAncestor.Sample.Values, catalog.Params{"p": "7", "q": 4.0})
	if lca.Value != 4 {
		t.Errorf("lca(\"7\", 4.0) = %v, want 4", lca.Value)
	}
}

func TestValueParamVisibility(t *testing.T) {
	value, _ := BSTOperations.Param("value")
	defaults := BSTOperations.Defaults()
	if !value.Visible(catalog.Params{"operation": OpInsert}, defaults) {
		t.Error("value should be visible for insert")
	}
	if value.Visible(catalog.Params{"operation": OpFindMin}, defaults) {
		t.Error("value should be hidden for findMin")
	}
}

func TestIsBalanced(t *testing.T) {
	chain := []int{1, 2, -1, 3, -1, 4, -1, 5}
	perfect := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	tests := []struct {
		name   string
		values []int
		want   bool
	}{
		{"skewed chain", chain, false},
		{"perfect", perfect, true},
		{"single", []int{1}, true},
		{"two-node chain", []int{1, 2}, true},
		{"three-node chain", []int{1, 2, -1, 3}, false},
		{"sample", IsBalanced.Sample.Values, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := result(t, IsBalanced, tt.values, nil); res.Value != tt.want {
				t.Errorf("isBalanced = %v, want %v", res.Value, tt.want)
			}
		})
	}
}

func TestLowestCommonAncestor(t *testing.T) {
	values := LowestCommonAncestor.Sample.Values
	tests := []struct {
		p, q int
		want int // node ID
	}{
		{7, 4, 4},
		{5, 1, 0},
		{5, 4, 1},
		{6, 8, 0},
		{7, 7, 9},
		{5, 99, -1},
	}
	for _, tt := range tests {
		res := result(t, LowestCommonAncestor, values, catalog.Params{"p": tt.p, "q": tt.q})
		if res.Value != tt.want {
			t.Errorf("lca(%d, %d) = %v, want %d", tt.p, tt.q, res.Value, tt.want)
		}
	}
}

func TestSnapshotsAreNeverMutated(t *testing.T) {
	var snaps []*step.Snapshot
	var copies []step.Snapshot
	for ev := range InorderTraversal.Run(catalog.Input{Values: []int{5, 3, 7, 2, 4}}, nil) {
		if ev.Kind == step.KindAuxiliary {
			snaps = append(snaps, ev.Snapshot)
			copies = append(copies, ev.Snapshot.Clone())
		}
	}
	for i := range snaps {
		if !reflect.DeepEqual(*snaps[i], copies[i]) {
			t.Fatalf("snapshot %d changed after being yielded", i)
		}
	}
	if len(snaps) < 3 || reflect.DeepEqual(snaps[0].Nodes, snaps[len(snaps)-2].Nodes) {
		t.Error("expected snapshots to evolve")
	}
}

func TestProducersDoNotMutateInput(t *testing.T) {
	for _, d := range Descriptors {
		values := slices.Clone(d.Sample.Values)
		run(t, d, values, d.SampleParams)
		if !reflect.DeepEqual(values, d.Sample.Values) {
			t.Errorf("%s mutated its input", d.ID)
		}
	}
}
