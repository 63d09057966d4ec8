package algorithms

import (
	"encoding/json"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/step"
)

func TestRegistryHasEveryDescriptor(t *testing.T) {
	reg := Registry()
	if reg.Len() != len(All) {
		t.Fatalf("registry has %d descriptors, want %d", reg.Len(), len(All))
	}
	for _, id := range []string{
		"bidirectionalSearch", "bstOperations", "preorderTraversal", "inorderTraversal",
		"postorderTraversal", "levelOrderTraversal", "isBST", "isBalanced", "treeHeight",
	} {
		if Find(id) == nil {
			t.Errorf("Find(%q) = nil", id)
		}
	}
	if Find("bogoSort") != nil {
		t.Error("Find(bogoSort) should be nil")
	}
}

func TestDescriptorsAreComplete(t *testing.T) {
	for _, d := range All {
		t.Run(d.ID, func(t *testing.T) {
			if d.Name == "" || d.Description == "" || len(d.Pseudocode) == 0 {
				t.Error("missing display metadata")
			}
			if !slices.Contains(catalog.Categories, d.Category) {
				t.Errorf("unknown category %q", d.Category)
			}
			if d.Validate == nil {
				t.Error("no validator")
			}
			for _, p := range d.Params {
				if err := p.Check(catalog.Params{p.ID: p.Default}); err != nil {
					t.Errorf("default of %s fails its own check: %v", p.ID, err)
				}
				if p.Depends != nil {
					if _, ok := d.Param(p.Depends.ParamID); !ok {
						t.Errorf("%s depends on unknown parameter %s", p.ID, p.Depends.ParamID)
					}
				}
			}
		})
	}
}

func TestSamplesAreDeterministicAndWellFormed(t *testing.T) {
	lim := catalog.DefaultLimits()
	for _, d := range All {
		t.Run(d.ID, func(t *testing.T) {
			input := d.Sample.Clone()
			first, err := d.Start(d.Sample, d.SampleParams, lim)
			if err != nil {
				t.Fatalf("sample rejected: %v", err)
			}
			a := step.Collect(first)
			second, _ := d.Start(d.Sample, d.SampleParams, lim)
			b := step.Collect(second)

			if !reflect.DeepEqual(a, b) {
				t.Fatal("two runs with the same input differ")
			}
			if err := step.CheckTrace(a, d.PositionCount(d.Sample, d.SampleParams)); err != nil {
				t.Fatalf("CheckTrace() = %v", err)
			}
			if !reflect.DeepEqual(input, d.Sample) {
				t.Error("sample input was mutated")
			}

			data, err := json.Marshal(a)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded []step.Event
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(decoded, a) {
				t.Error("trace does not survive a JSON round trip")
			}
		})
	}
}

func TestProducersStopWhenAbandoned(t *testing.T) {
	for _, d := range All {
		seq, err := d.Start(d.Sample, d.SampleParams, catalog.Limits{})
		if err != nil {
			t.Fatalf("%s: %v", d.ID, err)
		}
		for n := range 4 {
			if got := step.Take(seq, n); len(got) != n {
				t.Errorf("%s: Take(%d) returned %d events", d.ID, n, len(got))
			}
		}
	}
}

func TestAcceptedInputNeverBreaksTrace(t *testing.T) {
	lim := catalog.DefaultLimits()
	extras := []struct {
		name  string
		apply func(in *catalog.Input)
	}{
		{"stray values", func(in *catalog.Input) {
			if len(in.Values) == 0 {
				in.Values = []int{1}
			}
		}},
		{"stray text", func(in *catalog.Input) {
			if in.Text == "" {
				in.Text = "racecar"
			}
		}},
		{"stray edges", func(in *catalog.Input) {
			if len(in.Edges) == 0 {
				in.Edges = [][2]int{{0, 1}}
			}
		}},
	}
	for _, d := range All {
		for _, x := range extras {
			t.Run(d.ID+"/"+x.name, func(t *testing.T) {
				in := d.Sample.Clone()
				x.apply(&in)
				seq, err := d.Start(in, d.SampleParams, lim)
				if err != nil {
					if !errors.Is(err, errors.ErrCodeInvalidInput) {
						t.Fatalf("rejected with %v, want INVALID_INPUT", err)
					}
					return
				}
				if err := step.CheckTrace(step.Collect(seq), d.PositionCount(in, d.SampleParams)); err != nil {
					t.Fatalf("accepted input broke the trace: %v", err)
				}
			})
		}
	}
}
