package graphs

import (
	"reflect"
	"testing"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

func order(t *testing.T, d *catalog.Descriptor, in catalog.Input, start int) []int {
	t.Helper()
	seq, err := d.Start(in, catalog.Params{"start": start}, catalog.DefaultLimits())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	events := step.Collect(seq)
	if err := step.CheckTrace(events, len(in.Values)); err != nil {
		t.Fatalf("CheckTrace() = %v", err)
	}
	res, _ := step.Last(events)
	return res.Value.([]int)
}

func TestTraversalOrder(t *testing.T) {
	tests := []struct {
		name  string
		desc  *catalog.Descriptor
		start int
		want  []int
	}{
		{"bfs from 0", BFS, 0, []int{0, 1, 2, 3, 4, 5, 6}},
		{"dfs from 0", DFS, 0, []int{0, 1, 3, 4, 6, 5, 2}},
		{"bfs from 6", BFS, 6, []int{6, 4, 5, 1, 2, 0, 3}},
		{"missing start", BFS, 20, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := order(t, tt.desc, sample, tt.start); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisconnectedNodesAreNotReached(t *testing.T) {
	in := catalog.Input{Values: []int{10, 20, 30, 40}, Edges: [][2]int{{0, 1}, {2, 3}}}
	for _, d := range Descriptors {
		if got := order(t, d, in, 2); !reflect.DeepEqual(got, []int{2, 3}) {
			t.Errorf("%s order = %v, want [2 3]", d.ID, got)
		}
	}
}

func TestEdgeOrderDoesNotMatter(t *testing.T) {
	reversed := catalog.Input{Values: sample.Values}
	for i := len(sample.Edges) - 1; i >= 0; i-- {
		e := sample.Edges[i]
		reversed.Edges = append(reversed.Edges, [2]int{e[1], e[0]})
	}
	for _, d := range Descriptors {
		if a, b := order(t, d, sample, 0), order(t, d, reversed, 0); !reflect.DeepEqual(a, b) {
			t.Errorf("%s: %v != %v", d.ID, a, b)
		}
	}
}
