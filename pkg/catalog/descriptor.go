// Package catalog describes the algorithms stepviz can narrate.
//
// A [Descriptor] bundles an algorithm's static metadata (name, category,
// complexity, pseudocode, parameter schema) with a pure input validator and
// the step producer. Descriptors are constructed once at package load and
// never mutated; every call to [Descriptor.Start] creates a fresh sequence
// that owns all of its mutable state.
//
// # Contract
//
// Consumers must validate before running. [Descriptor.Start] enforces this:
// it runs the validator and the parameter schema checks and only constructs
// the producer when both pass, so a failing input never reaches a producer.
//
//	seq, err := desc.Start(catalog.Input{Values: []int{5, 3, 8}}, catalog.Params{"target": 8}, catalog.DefaultLimits())
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err)) // shown verbatim
//	    return
//	}
//	for ev := range seq {
//	    // render ev
//	}
package catalog

import (
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Category is the fixed taxonomy used to group algorithms.
type Category string

// Categories.
const (
	CategorySorting     Category = "sorting"
	CategorySearching   Category = "searching"
	CategoryTrees       Category = "trees"
	CategoryGraphs      Category = "graphs"
	CategoryDP          Category = "dp"
	CategoryGreedy      Category = "greedy"
	CategoryHashing     Category = "hashing"
	CategoryStrings     Category = "strings"
	CategoryStacks      Category = "stacks"
	CategoryQueues      Category = "queues"
	CategoryHeaps       Category = "heaps"
	CategoryLinkedLists Category = "linked-lists"
	CategoryRecursion   Category = "recursion"
	CategoryArrays      Category = "arrays"
)

// Categories lists the taxonomy in display order.
var Categories = []Category{
	CategorySorting,
	CategorySearching,
	CategoryTrees,
	CategoryGraphs,
	CategoryDP,
	CategoryGreedy,
	CategoryHashing,
	CategoryStrings,
	CategoryStacks,
	CategoryQueues,
	CategoryHeaps,
	CategoryLinkedLists,
	CategoryRecursion,
	CategoryArrays,
}

// Difficulty is a coarse tier shown next to the algorithm name.
type Difficulty string

// Difficulty tiers.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Complexity holds display-only complexity strings.
type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
	Space   string `json:"space" yaml:"space"`
}

// Input is the validated data handed to a producer. Array algorithms read
// Values, graph algorithms read Values (node labels) and Edges, string
// algorithms read Text.
type Input struct {
	Values []int    `json:"values,omitempty" yaml:"values,omitempty"`
	Edges  [][2]int `json:"edges,omitempty" yaml:"edges,omitempty"`
	Text   string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// Clone returns a deep copy so producers never share the caller's slices.
func (in Input) Clone() Input {
	out := Input{Text: in.Text}
	if in.Values != nil {
		out.Values = append([]int{}, in.Values...)
	}
	if in.Edges != nil {
		out.Edges = append([][2]int{}, in.Edges...)
	}
	return out
}

// Validator checks raw input against an algorithm's requirements. It returns
// nil or an *errors.Error whose message is shown to the user verbatim.
type Validator func(in Input, lim Limits) error

// Producer builds the lazy event sequence for validated input.
type Producer func(in Input, p Params) step.Seq

// Descriptor is the static description of one algorithm.
type Descriptor struct {
	// ID is the unique catalog key, e.g. "bidirectionalSearch".
	ID string

	// Name is the display name.
	Name string

	Category   Category
	Difficulty Difficulty
	Complexity Complexity

	// Description is a one-paragraph summary for info cards.
	Description string

	// Pseudocode lines; highlight events reference them 1-based.
	Pseudocode []string

	// Params is the ordered parameter schema.
	Params []Param

	// Validate checks input before a run. Nil accepts everything.
	Validate Validator

	// Run produces the event sequence. It must be deterministic, must not
	// mutate its input, and must terminate for every validated input.
	Run Producer

	// Positions returns the number of addressable positions for trace
	// checks. Nil defaults to len(Values), or the rune count of Text.
	Positions func(in Input, p Params) int

	// Sample is a representative valid input used by "verify" and demos.
	Sample Input

	// SampleParams accompanies Sample.
	SampleParams Params
}

// Check validates input and parameters without running anything.
func (d *Descriptor) Check(in Input, p Params, lim Limits) error {
	if d.Validate != nil {
		if err := d.Validate(in, lim.orDefault()); err != nil {
			return err
		}
	}
	return d.CheckParams(p)
}

// Start validates and, only on success, returns a fresh event sequence.
func (d *Descriptor) Start(in Input, p Params, lim Limits) (step.Seq, error) {
	if err := d.Check(in, p, lim); err != nil {
		return nil, err
	}
	in = in.Clone()
	p = p.Clone()
	return d.Run(in, p), nil
}

// PositionCount reports the bound used by trace invariant checks.
func (d *Descriptor) PositionCount(in Input, p Params) int {
	if d.Positions != nil {
		return d.Positions(in, p)
	}
	if len(in.Values) > 0 {
		return len(in.Values)
	}
	return len([]rune(in.Text))
}

// Param returns the schema entry with the given ID.
func (d *Descriptor) Param(id string) (Param, bool) {
	for _, p := range d.Params {
		if p.ID == id {
			return p, true
		}
	}
	return Param{}, false
}

// CheckParams validates the values present in p against the schema. Missing
// keys are fine: producers apply their own defaults.
func (d *Descriptor) CheckParams(p Params) error {
	for key := range p {
		if _, ok := d.Param(key); !ok {
			return errors.New(errors.ErrCodeInvalidParam, "unknown parameter %q for %s", key, d.Name)
		}
	}
	for _, param := range d.Params {
		if _, ok := p[param.ID]; !ok {
			continue
		}
		if err := param.Check(p); err != nil {
			return err
		}
	}
	return nil
}

// VisibleParams returns the schema entries whose dependsOn predicate holds
// for current. Missing controlling keys use their defaults.
func (d *Descriptor) VisibleParams(current Params) []Param {
	defaults := d.Defaults()
	var out []Param
	for _, param := range d.Params {
		if param.Visible(current, defaults) {
			out = append(out, param)
		}
	}
	return out
}

// Defaults returns a parameter record holding every default value.
func (d *Descriptor) Defaults() Params {
	out := make(Params, len(d.Params))
	for _, param := range d.Params {
		out[param.ID] = param.Default
	}
	return out
}
