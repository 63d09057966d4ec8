// Package algorithms provides the complete catalog of step producers.
//
// This package exists to break import cycles: the category packages
// (sorting, trees, etc.) import pkg/catalog, so pkg/catalog cannot import
// them back. Consumers that need the full catalog import this package.
//
// Usage:
//
//	reg := algorithms.Registry()
//	desc, err := reg.Get("bidirectionalSearch")
package algorithms

import (
	"slices"
	"sync"

	"github.com/matzehuels/stepviz/pkg/algorithms/arrays"
	"github.com/matzehuels/stepviz/pkg/algorithms/dp"
	"github.com/matzehuels/stepviz/pkg/algorithms/graphs"
	"github.com/matzehuels/stepviz/pkg/algorithms/hashing"
	"github.com/matzehuels/stepviz/pkg/algorithms/searching"
	"github.com/matzehuels/stepviz/pkg/algorithms/sorting"
	"github.com/matzehuels/stepviz/pkg/algorithms/stacks"
	"github.com/matzehuels/stepviz/pkg/algorithms/text"
	"github.com/matzehuels/stepviz/pkg/algorithms/trees"
	"github.com/matzehuels/stepviz/pkg/catalog"
)

// All is the canonical list of descriptors.
var All = slices.Concat(
	sorting.Descriptors,
	searching.Descriptors,
	trees.Descriptors,
	graphs.Descriptors,
	dp.Descriptors,
	hashing.Descriptors,
	text.Descriptors,
	stacks.Descriptors,
	arrays.Descriptors,
)

var registry = sync.OnceValue(func() *catalog.Registry {
	return catalog.New(All...)
})

// Registry returns the shared registry over [All].
func Registry() *catalog.Registry {
	return registry()
}

// Find returns the descriptor with the given ID, or nil if not found.
func Find(id string) *catalog.Descriptor {
	d, err := Registry().Get(id)
	if err != nil {
		return nil
	}
	return d
}
