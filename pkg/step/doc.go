// Package step defines the event model shared by every algorithm producer.
//
// # Overview
//
// A producer narrates an algorithm's execution as a lazy sequence of
// immutable [Event] values. Each event describes a single observable action:
// two positions were compared, two values swapped, a node visited, a result
// found. A player pulls events one at a time and folds them into whatever
// it renders; the producer never calls back into the player.
//
// # Sequences
//
// Producers return a [Seq], which is an [iter.Seq] of events. Every yield is
// a suspension point: the producer does no further work until the consumer
// asks for the next event, and a consumer that stops ranging simply abandons
// the producer. Producers hold no external resources, so abandoning a
// sequence is always safe.
//
//	for ev := range seq {
//	    fmt.Println(ev.Kind)
//	}
//
// Producers written against [Emitter] never call yield again after the
// consumer has stopped:
//
//	return func(yield func(step.Event) bool) {
//	    e := step.NewEmitter(yield)
//	    if !e.Emit(step.Compare(0, 1, step.RelLess)) {
//	        return
//	    }
//	    e.Emit(step.Result(step.ResultBoolean, true, "done"))
//	}
//
// # Snapshots
//
// Structures that are not a flat array (trees, graphs, hash tables, stacks)
// are described by [Snapshot]. A snapshot always carries the complete
// structure, never a delta, and producers build a fresh snapshot for every
// auxiliary event so that a previously yielded snapshot is never mutated.
//
// # Invariants
//
// [CheckTrace] verifies the invariants every finished trace must satisfy:
// it is non-empty, it ends with a result event, and index-bearing events
// only reference positions of the original input.
package step
