package trace

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/stepviz/pkg/algorithms/searching"
	"github.com/matzehuels/stepviz/pkg/algorithms/sorting"
	"github.com/matzehuels/stepviz/pkg/algorithms/trees"
	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/step"
)

type countingHooks struct {
	starts, completes, events int
	lastErr                   error
}

func (h *countingHooks) OnRunStart(context.Context, string) { h.starts++ }
func (h *countingHooks) OnRunComplete(_ context.Context, _ string, events int, _ time.Duration, err error) {
	h.completes++
	h.events = events
	h.lastErr = err
}

func TestRecord(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetRunHooks(hooks)
	t.Cleanup(observability.Reset)

	values := []int{5, 1, 4, 2}
	tr, err := Record(context.Background(), sorting.BubbleSort, catalog.Input{Values: values}, nil, catalog.DefaultLimits())
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if tr.ID == "" || tr.Algorithm != "bubbleSort" || tr.CreatedAt.IsZero() {
		t.Errorf("trace metadata = %+v", tr)
	}
	res, ok := tr.Result()
	if !ok || !reflect.DeepEqual(res.Value, []int{1, 2, 4, 5}) {
		t.Errorf("Result() = %v, %v", res.Value, ok)
	}
	if !reflect.DeepEqual(values, []int{5, 1, 4, 2}) {
		t.Errorf("input mutated: %v", values)
	}
	if hooks.starts != 1 || hooks.completes != 1 || hooks.events != tr.Len() || hooks.lastErr != nil {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestRecordRejectsInvalidInputBeforeRunning(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetRunHooks(hooks)
	t.Cleanup(observability.Reset)

	_, err := Record(context.Background(), searching.BinarySearch, catalog.Input{Values: []int{3, 1}}, nil, catalog.DefaultLimits())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Record() error = %v, want INVALID_INPUT", err)
	}
	if hooks.starts != 0 {
		t.Error("producer ran for invalid input")
	}
}

func TestRecordHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Record(ctx, sorting.BubbleSort, sorting.BubbleSort.Sample, nil, catalog.DefaultLimits())
	if err != context.Canceled {
		t.Errorf("Record() error = %v, want context.Canceled", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	tr, err := Record(context.Background(), trees.InorderTraversal, trees.InorderTraversal.Sample, nil, catalog.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got.Events, tr.Events) {
		t.Error("decoded events differ from recorded events")
	}
	if got.ID != tr.ID || !got.CreatedAt.Equal(tr.CreatedAt) {
		t.Errorf("metadata lost: %s %v", got.ID, got.CreatedAt)
	}

	if _, err := Unmarshal([]byte("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal(garbage) error = %v", err)
	}
}

func TestRunnerCachesTraces(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	in := catalog.Input{Values: []int{5, 3, 8, 1}}
	params := catalog.Params{"target": 8}

	first, hit, err := r.Run(ctx, searching.BidirectionalSearch, in, params)
	if err != nil || hit {
		t.Fatalf("first Run() = hit %v, err %v", hit, err)
	}
	second, hit, err := r.Run(ctx, searching.BidirectionalSearch, in, params)
	if err != nil || !hit {
		t.Fatalf("second Run() = hit %v, err %v", hit, err)
	}
	if second.ID != first.ID || second.Key != first.Key {
		t.Error("cache hit should return the recorded trace")
	}
	if !reflect.DeepEqual(second.Events, first.Events) {
		t.Error("cached events differ")
	}

	_, hit, _ = r.Run(ctx, searching.BidirectionalSearch, in, catalog.Params{"target": 1})
	if hit {
		t.Error("different params should miss")
	}
}

func TestRunnerDoesNotCacheInvalidInput(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	for range 2 {
		if _, hit, err := r.Run(ctx, searching.BinarySearch, catalog.Input{Values: []int{2, 1}}, nil); err == nil || hit {
			t.Fatalf("Run(unsorted) = hit %v, err %v", hit, err)
		}
	}
	n, _ := fc.Clear(context.Background())
	if n != 0 {
		t.Errorf("cache holds %d entries, want 0", n)
	}
}

func TestRunnerArtifact(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	tr, _, err := r.Run(ctx, sorting.BubbleSort, sorting.BubbleSort.Sample, nil)
	if err != nil {
		t.Fatal(err)
	}

	builds := 0
	build := func() ([]byte, error) {
		builds++
		return []byte("<svg/>"), nil
	}
	for range 2 {
		data, _, err := r.Artifact(ctx, tr, 3, "svg", build)
		if err != nil || string(data) != "<svg/>" {
			t.Fatalf("Artifact() = %q, %v", data, err)
		}
	}
	if builds != 1 {
		t.Errorf("build called %d times, want 1", builds)
	}
}

func TestPlayer(t *testing.T) {
	tr, err := Record(context.Background(), sorting.BubbleSort, catalog.Input{Values: []int{3, 1, 2}}, nil, catalog.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(tr)

	if _, ok := p.Current(); ok || p.Position() != 0 {
		t.Fatal("new player should start before the first event")
	}
	if p.Prev() {
		t.Error("Prev() at the start should report false")
	}
	initial := p.State()

	var states []State
	for p.Next() {
		states = append(states, p.State())
	}
	if !p.Done() || p.Position() != tr.Len() {
		t.Fatalf("player stopped at %d of %d", p.Position(), tr.Len())
	}
	final := p.State()
	if !reflect.DeepEqual(final.Values, []int{1, 2, 3}) {
		t.Errorf("final values = %v", final.Values)
	}
	if final.Result == nil || final.Result.Kind != step.KindResult {
		t.Error("final state should carry the result")
	}
	for i := range 3 {
		if final.Role(i) != step.RoleSorted {
			t.Errorf("position %d role = %q, want sorted", i, final.Role(i))
		}
	}
	if !reflect.DeepEqual(initial.Values, []int{3, 1, 2}) {
		t.Errorf("initial state changed to %v", initial.Values)
	}

	p.Prev()
	if !reflect.DeepEqual(p.State(), states[len(states)-2]) {
		t.Error("Prev() should restore the previous fold")
	}
	p.Seek(2)
	if !reflect.DeepEqual(p.State(), StateAt(tr, 2)) {
		t.Error("Seek(2) differs from StateAt(2)")
	}
	p.Seek(-5)
	if p.Position() != 0 {
		t.Errorf("Seek(-5) position = %d", p.Position())
	}
	p.Seek(1 << 30)
	if !p.Done() {
		t.Error("Seek past the end should clamp to Len")
	}
	p.Reset()
	if !reflect.DeepEqual(p.State(), initial) {
		t.Error("Reset() should restore the initial state")
	}
}

func TestStateTransientFields(t *testing.T) {
	tr := &Trace{
		Input: catalog.Input{Values: []int{2, 1}},
		Events: []step.Event{
			step.Compare(0, 1, step.RelGreater),
			step.Swap(0, 1),
			step.Mark(step.RoleSorted, 0, 1),
			step.Unmark(1),
			step.Visit(0),
			step.Result(step.ResultArray, []int{1, 2}, "sorted"),
		},
	}
	if s := StateAt(tr, 1); !slices.Equal(s.Comparing, []int{0, 1}) {
		t.Errorf("after compare: Comparing = %v", s.Comparing)
	}
	s := StateAt(tr, 2)
	if s.Comparing != nil || !slices.Equal(s.Swapped, []int{0, 1}) || !slices.Equal(s.Values, []int{1, 2}) {
		t.Errorf("after swap: %+v", s)
	}
	s = StateAt(tr, 5)
	if s.Role(0) != step.RoleSorted || s.Role(1) != step.RoleNone || s.Visited != 0 {
		t.Errorf("after unmark+visit: roles %v visited %d", s.Roles, s.Visited)
	}
}
