// Package dp provides dynamic programming producers. Each run shows its
// table as an auxiliary snapshot after every cell it fills.
package dp

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the dynamic programming algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	Fibonacci,
	LongestIncreasingSubsequence,
}

// table renders a DP table; unfilled cells show as empty.
func table(cells []int, filled int, marked []int, status string) step.Snapshot {
	s := step.Snapshot{Kind: step.StructureTable, Root: step.NoNode, Status: status, Marked: marked}
	for i, v := range cells {
		if i < filled {
			s.Cells = append(s.Cells, fmt.Sprint(v))
		} else {
			s.Cells = append(s.Cells, "")
		}
	}
	return s
}
