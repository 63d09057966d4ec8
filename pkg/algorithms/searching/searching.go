// Package searching provides step producers for array search.
//
// Each producer reads the "target" parameter and ends with a
// [step.ResultSearch] result holding the index of the match, or -1 when
// the target is absent. A miss is a normal outcome, narrated with a final
// message like any other run.
package searching

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the searching algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	LinearSearch,
	BinarySearch,
	BidirectionalSearch,
	JumpSearch,
}

func targetParam() catalog.Param {
	return catalog.Number("target", "Target", 0, -999, 999)
}

// finish ends a run with the index of target, or -1.
func finish(e *step.Emitter, index, target int) {
	if index < 0 {
		e.Finish(fmt.Sprintf("%d is not in the array", target), step.ResultSearch, -1, "not found")
		return
	}
	if !e.Emit(step.Mark(step.RoleFound, index)) {
		return
	}
	e.Finish(fmt.Sprintf("Found %d at index %d", target, index), step.ResultSearch, index, fmt.Sprintf("index %d", index))
}
