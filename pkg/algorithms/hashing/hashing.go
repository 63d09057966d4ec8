// Package hashing provides an open-addressing hash table producer.
package hashing

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the hashing algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	LinearProbing,
}

// Empty marks an unused slot in the result table. It is rejected as a key.
const Empty = -1

// LinearProbing inserts every input value into a table of the given size
// using h(v) = v mod size and probing forward on collision. Index-bearing
// events refer to input positions; the table itself is shown as an
// auxiliary snapshot.
var LinearProbing = &catalog.Descriptor{
	ID:          "linearProbing",
	Name:        "Hash Table (Linear Probing)",
	Category:    catalog.CategoryHashing,
	Difficulty:  catalog.Intermediate,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(1)", Worst: "O(n)", Space: "O(m)"},
	Description: "Places each key at its hash slot, stepping to the next slot until a free one turns up.",
	Pseudocode: []string{
		"for each key:",
		"  slot = key mod m",
		"  while table[slot] is occupied:",
		"    slot = (slot + 1) mod m",
		"  table[slot] = key",
	},
	Params:       []catalog.Param{catalog.Number("size", "Table size", 11, 1, 31)},
	Validate:     catalog.Chain(catalog.ArrayInput(1), catalog.Distinct(), catalog.Reserved(Empty, "marks an empty slot")),
	Run:          linearProbing,
	Sample:       catalog.Input{Values: []int{23, 43, 13, 27, 36, 5, 14}},
	SampleParams: catalog.Params{"size": 11},
}

func linearProbing(in catalog.Input, p catalog.Params) step.Seq {
	size := max(1, p.Int("size", 11))
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		table := make([]int, size)
		used := make([]bool, size)
		for i := range table {
			table[i] = Empty
		}
		snapshot := func(marked []int, status string) step.Snapshot {
			s := step.Snapshot{Kind: step.StructureTable, Root: step.NoNode, Marked: marked, Status: status}
			for i, v := range table {
				if used[i] {
					s.Cells = append(s.Cells, fmt.Sprint(v))
				} else {
					s.Cells = append(s.Cells, "")
				}
			}
			return s
		}

		if !e.Emit(step.Info(fmt.Sprintf("Inserting %d keys into %d slots", len(in.Values), size)), step.Auxiliary(snapshot(nil, "empty table"))) {
			return
		}
		stored := 0
		for i, v := range in.Values {
			slot := ((v % size) + size) % size
			if !e.Emit(
				step.Highlight(1, 2),
				step.Visit(i),
				step.Mark(step.RoleCurrent, i),
				step.Vars(step.V("key", v), step.V("hash", slot)),
			) {
				return
			}
			if stored == size {
				if !e.Emit(step.Mark(step.RoleDeleted, i), step.Explain(fmt.Sprintf("The table is full, %d is dropped", v))) {
					return
				}
				continue
			}
			probes := 0
			for used[slot] {
				probes++
				next := (slot + 1) % size
				if !e.Emit(
					step.Highlight(3, 4),
					step.Auxiliary(snapshot([]int{slot}, fmt.Sprintf("slot %d holds %d, probe %d", slot, table[slot], next))),
				) {
					return
				}
				slot = next
			}
			table[slot], used[slot] = v, true
			stored++
			if !e.Emit(
				step.Highlight(5),
				step.Unmark(i),
				step.Mark(step.RoleSorted, i),
				step.Vars(step.V("key", v), step.V("slot", slot), step.V("probes", probes)),
				step.Auxiliary(snapshot([]int{slot}, fmt.Sprintf("%d stored in slot %d", v, slot))),
			) {
				return
			}
		}
		e.Finish(fmt.Sprintf("Stored %d of %d keys", stored, len(in.Values)), step.ResultArray, table, "table")
	}
}
