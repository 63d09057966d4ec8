package step

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/stepviz/pkg/errors"
)

func counter(n int) Seq {
	return func(yield func(Event) bool) {
		e := NewEmitter(yield)
		for i := 0; i < n; i++ {
			if !e.Emit(Visit(i)) {
				return
			}
		}
		e.Emit(Result(ResultNumber, n, "count"))
	}
}

func TestCollect(t *testing.T) {
	events := Collect(counter(3))
	if len(events) != 4 {
		t.Fatalf("len = %d, want 4", len(events))
	}
	last, _ := Last(events)
	if last.Kind != KindResult || last.Value != 3 {
		t.Errorf("last = %v", last)
	}
}

func TestTakeStopsProducer(t *testing.T) {
	events := Take(counter(100), 2)
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if got := Take(counter(3), 0); len(got) != 0 {
		t.Errorf("Take(0) = %v", got)
	}
}

func TestEmitterStopsAfterRefusal(t *testing.T) {
	calls := 0
	e := NewEmitter(func(Event) bool {
		calls++
		return calls < 2
	})
	if !e.Emit(Info("a")) {
		t.Fatal("first emit refused")
	}
	if e.Emit(Info("b"), Info("c")) {
		t.Fatal("second emit should report stop")
	}
	if e.Emit(Info("d")) {
		t.Fatal("emit after stop should be refused")
	}
	if calls != 2 {
		t.Errorf("yield called %d times, want 2", calls)
	}
	if !e.Stopped() || e.Count() != 1 {
		t.Errorf("Stopped() = %v, Count() = %d", e.Stopped(), e.Count())
	}
}

func TestConstructorsCopyInputs(t *testing.T) {
	idx := []int{1, 2}
	ev := Mark(RoleFound, idx...)
	idx[0] = 9
	if ev.Indices[0] != 1 {
		t.Error("Mark aliases caller slice")
	}

	vals := []int{3, 4}
	res := Result(ResultArray, vals, "sorted")
	vals[0] = 0
	if res.Value.([]int)[0] != 3 {
		t.Error("Result aliases caller slice")
	}

	snap := Snapshot{Kind: StructureTree, Nodes: []Node{{ID: 0, Left: NoNode, Right: NoNode}}, Root: 0}
	aux := Auxiliary(snap)
	snap.Nodes[0].Role = RoleVisited
	if aux.Snapshot.Nodes[0].Role != RoleNone {
		t.Error("Auxiliary aliases caller snapshot")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		if err != nil || got != r {
			t.Errorf("ParseRole(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseRole("sparkly"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseRole(sparkly) error = %v", err)
	}
}

func TestDecodeRejectsUnknownRoles(t *testing.T) {
	var ev Event
	if err := json.Unmarshal([]byte(`{"type":"mark","indices":[0],"role":"sorted"}`), &ev); err != nil || ev.Role != RoleSorted {
		t.Fatalf("decode mark = %+v, %v", ev, err)
	}
	if err := json.Unmarshal([]byte(`{"type":"mark","indices":[0],"role":"sparkly"}`), &ev); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown event role error = %v", err)
	}
	snap := `{"type":"auxiliary","snapshot":{"kind":"tree","root":0,"nodes":[{"id":0,"value":1,"left":-1,"right":-1,"role":"sparkly"}]}}`
	if err := json.Unmarshal([]byte(snap), &ev); err == nil {
		t.Error("unknown node role should fail to decode")
	}
}

func TestRel(t *testing.T) {
	if Rel(1, 2) != RelLess || Rel(2, 1) != RelGreater || Rel(2, 2) != RelEqual {
		t.Error("Rel mismatch")
	}
}

func TestCheckTrace(t *testing.T) {
	tests := []struct {
		name      string
		events    []Event
		positions int
		wantErr   bool
	}{
		{"valid", []Event{Compare(0, 1, RelLess), Result(ResultBoolean, true, "")}, 2, false},
		{"message then result", []Event{Info("empty"), Result(ResultSearch, -1, "")}, 0, false},
		{"unchecked bounds", []Event{Visit(40), Result(ResultNumber, 1, "")}, 0, false},

		{"empty", nil, 0, true},
		{"no result", []Event{Visit(0)}, 1, true},
		{"out of bounds", []Event{Visit(3), Result(ResultNumber, 1, "")}, 3, true},
		{"negative index", []Event{Mark(RoleFound, -1), Result(ResultNumber, 1, "")}, 3, true},
		{"bad role", []Event{Mark("glow", 0), Result(ResultNumber, 1, "")}, 3, true},
		{"nil snapshot", []Event{{Kind: KindAuxiliary}, Result(ResultNumber, 1, "")}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTrace(tt.events, tt.positions)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckTrace() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeTraceInvariant) {
				t.Errorf("CheckTrace() wrong code: %v", err)
			}
		})
	}
}

func TestEventJSONKeepsResultTypes(t *testing.T) {
	events := []Event{
		Compare(0, 1, RelGreater),
		Pointer([]Label{L("lo", 0)}, []Var{V("target", 8)}, "searching"),
		Auxiliary(Snapshot{Kind: StructureTree, Nodes: []Node{{ID: 0, Value: 5, Left: NoNode, Right: NoNode}}, Root: 0}),
		Result(ResultSearch, 2, "found"),
		Result(ResultBoolean, false, "not a BST"),
		Result(ResultIndices, []int{1, 2, 3, 5}, "order"),
		Result(ResultText, "a:2", "counts"),
	}

	data, err := json.Marshal(events)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded []Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, events) {
		t.Errorf("decoded events differ:\n got %+v\nwant %+v", decoded, events)
	}
}

func TestFinalResult(t *testing.T) {
	events := []Event{Result(ResultNumber, 1, "first"), Info("tail")}
	got, ok := FinalResult(events)
	if !ok || got.Label != "first" {
		t.Errorf("FinalResult() = %v, %v", got, ok)
	}
	if _, ok := FinalResult(nil); ok {
		t.Error("FinalResult(nil) should report false")
	}
}
