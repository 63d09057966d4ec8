package term

import (
	"strings"
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/trace"
)

func TestArray(t *testing.T) {
	tr := &trace.Trace{
		Input:  catalog.Input{Values: []int{42, 7}},
		Events: []step.Event{step.Pointer([]step.Label{step.L("lo", 0)}, nil, "")},
	}
	out := Array(trace.StateAt(tr, 1))
	for _, want := range []string{"42", "7", "0", "1", "lo"} {
		if !strings.Contains(out, want) {
			t.Errorf("Array() missing %q:\n%s", want, out)
		}
	}
	if Array(trace.State{}) != "" {
		t.Error("empty state should draw nothing")
	}
}

func TestArrayText(t *testing.T) {
	out := Array(trace.StateAt(&trace.Trace{Input: catalog.Input{Text: "aba"}}, 0))
	if strings.Count(out, "a") < 2 || !strings.Contains(out, "b") {
		t.Errorf("Array() text:\n%s", out)
	}
}

func TestSnapshotTree(t *testing.T) {
	snap := &step.Snapshot{
		Kind: step.StructureTree,
		Root: 0,
		Nodes: []step.Node{
			{ID: 0, Value: 5, Left: 1, Right: 2},
			{ID: 1, Value: 3, Left: step.NoNode, Right: step.NoNode},
			{ID: 2, Value: 7, Left: step.NoNode, Right: step.NoNode},
		},
		Order: []int{3, 5},
	}
	lines := strings.Split(Snapshot(snap), "\n")
	want := []string{"    ┌── 7", "5", "    └── 3", "order: 3 5"}
	if len(lines) != len(want) {
		t.Fatalf("Snapshot() lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	empty := &step.Snapshot{Kind: step.StructureTree, Root: step.NoNode}
	if !strings.Contains(Snapshot(empty), "empty tree") {
		t.Error("empty tree should say so")
	}
}

func TestSnapshotGraphAndCells(t *testing.T) {
	g := &step.Snapshot{
		Kind:  step.StructureGraph,
		Nodes: []step.Node{{ID: 0, Value: 0}, {ID: 1, Value: 1}, {ID: 2, Value: 2}},
		Edges: []step.Edge{{From: 0, To: 2}, {From: 0, To: 1}},
	}
	if out := Snapshot(g); !strings.Contains(out, "0 → 1 2") {
		t.Errorf("Snapshot(graph) =\n%s", out)
	}

	st := &step.Snapshot{Kind: step.StructureStack, Cells: []string{"(", "["}, Status: "push ["}
	if out := Snapshot(st); !strings.Contains(out, "[(] [[]") || !strings.Contains(out, "push [") {
		t.Errorf("Snapshot(stack) =\n%s", out)
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		ev   step.Event
		want string
	}{
		{step.Result(step.ResultSearch, -1, "index"), "index: not found"},
		{step.Result(step.ResultSearch, -1, "not found"), "not found"},
		{step.Result(step.ResultSearch, 2, "index"), "index: 2"},
		{step.Result(step.ResultArray, []int{1, 2}, "sorted"), "sorted: [1, 2]"},
		{step.Result(step.ResultBoolean, true, "balanced"), "balanced: true"},
	}
	for _, tt := range tests {
		if got := Result(tt.ev); got != tt.want {
			t.Errorf("Result() = %q, want %q", got, tt.want)
		}
	}
}

func TestPseudocodeMarksHighlightedLines(t *testing.T) {
	d := &catalog.Descriptor{Pseudocode: []string{"a", "b", "c"}}
	lines := strings.Split(Pseudocode(d, []int{2}), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "▸ b") || strings.Contains(lines[0], "▸") {
		t.Errorf("Pseudocode() = %q", lines)
	}
}
