// Package pkg provides the core libraries for stepviz, an algorithm
// visualizer that narrates each run as a stream of step events.
//
// # Overview
//
// Every algorithm is a producer that yields events (compare, swap, mark,
// visit, pointer, highlight, message, auxiliary snapshot, result) instead of
// returning an answer. The pkg directory is organized into:
//
//  1. [step] - The event vocabulary, roles and snapshots
//  2. [catalog] - Descriptors, parameter schemas, validators and the registry
//  3. [algorithms] - The producers, one subpackage per category
//  4. [trace] - Recording, caching and replaying runs
//  5. [render] - DOT/SVG/PNG/PDF and terminal drawing of a trace state
//  6. [cache], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	user input (values, edges, text, params)
//	         ↓
//	    [catalog] Descriptor.Check (validate, never run on failure)
//	         ↓
//	    producer → iter.Seq[step.Event]
//	         ↓
//	    [trace] Record / Runner (cached)
//	         ↓
//	    [trace] Player → State at step N
//	         ↓
//	    [render] SVG/PDF/PNG/DOT, or the terminal player
//
// # Quick Start
//
//	d := algorithms.Find("bidirectionalSearch")
//	t, err := trace.Record(ctx, d, catalog.Input{Values: []int{5, 3, 8, 1, 9, 2}},
//	    catalog.Params{"target": 8}, catalog.DefaultLimits())
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	res, _ := t.Result() // ResultSearch 2
//	svg, err := render.Draw(ctx, trace.StateAt(t, 4), render.FormatSVG)
//
// [step]: github.com/matzehuels/stepviz/pkg/step
// [catalog]: github.com/matzehuels/stepviz/pkg/catalog
// [algorithms]: github.com/matzehuels/stepviz/pkg/algorithms
// [trace]: github.com/matzehuels/stepviz/pkg/trace
// [render]: github.com/matzehuels/stepviz/pkg/render
// [cache]: github.com/matzehuels/stepviz/pkg/cache
// [config]: github.com/matzehuels/stepviz/pkg/config
// [observability]: github.com/matzehuels/stepviz/pkg/observability
package pkg
