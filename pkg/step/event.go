package step

import (
	"fmt"
	"iter"
)

// Kind discriminates the variants of [Event].
type Kind string

// Event kinds.
const (
	KindCompare   Kind = "compare"
	KindSwap      Kind = "swap"
	KindMark      Kind = "mark"
	KindUnmark    Kind = "unmark"
	KindVisit     Kind = "visit"
	KindPointer   Kind = "pointer"
	KindHighlight Kind = "highlight"
	KindMessage   Kind = "message"
	KindAuxiliary Kind = "auxiliary"
	KindResult    Kind = "result"
)

// Relation optionally qualifies a compare event with its outcome.
type Relation string

// Comparison outcomes. RelNone means the producer did not record one.
const (
	RelNone    Relation = ""
	RelLess    Relation = "<"
	RelEqual   Relation = "="
	RelGreater Relation = ">"
)

// Rel returns the relation between a and b.
func Rel(a, b int) Relation {
	switch {
	case a < b:
		return RelLess
	case a > b:
		return RelGreater
	default:
		return RelEqual
	}
}

// MessageKind classifies narration messages.
type MessageKind string

// Message kinds.
const (
	MessageInfo        MessageKind = "info"
	MessageStep        MessageKind = "step"
	MessageExplanation MessageKind = "explanation"
)

// ResultKind tells the player how to display a result value.
type ResultKind string

// Result kinds and the Go type carried in [Event.Value] for each.
const (
	ResultSearch  ResultKind = "search"  // int, -1 when absent
	ResultNumber  ResultKind = "number"  // int
	ResultBoolean ResultKind = "boolean" // bool
	ResultIndices ResultKind = "indices" // []int
	ResultArray   ResultKind = "array"   // []int
	ResultText    ResultKind = "text"    // string
)

// Label names a position, e.g. "lo" -> 3, for the variables panel.
type Label struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Var is a named scalar shown in the variables panel. Values are stored
// pre-formatted so that events stay comparable and serializable.
type Var struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// L builds a Label.
func L(name string, index int) Label { return Label{Name: name, Index: index} }

// V builds a Var, formatting value with fmt.Sprint.
func V(name string, value any) Var { return Var{Name: name, Value: fmt.Sprint(value)} }

// Event is one immutable step of an algorithm's execution. Kind selects
// which of the remaining fields are meaningful; the others stay zero.
type Event struct {
	Kind Kind `json:"type"`

	// compare, swap, mark, unmark, visit
	Indices  []int    `json:"indices,omitempty"`
	Relation Relation `json:"relation,omitempty"`
	Role     Role     `json:"role,omitempty"`

	// pointer
	Labels  []Label `json:"labels,omitempty"`
	Vars    []Var   `json:"vars,omitempty"`
	Caption string  `json:"caption,omitempty"`

	// highlight
	Lines []int `json:"lines,omitempty"`

	// message
	Text        string      `json:"text,omitempty"`
	MessageKind MessageKind `json:"kind,omitempty"`
	Line        int         `json:"line,omitempty"`

	// auxiliary
	Snapshot *Snapshot `json:"snapshot,omitempty"`

	// result
	ResultKind ResultKind `json:"result_kind,omitempty"`
	Value      any        `json:"value,omitempty"`
	Label      string     `json:"label,omitempty"`
}

// Seq is a lazy, finite sequence of events produced by one run.
type Seq = iter.Seq[Event]

// String returns a compact single-line description, used by log output and
// the text player.
func (e Event) String() string {
	switch e.Kind {
	case KindCompare:
		if e.Relation != RelNone {
			return fmt.Sprintf("compare %v %s", e.Indices, e.Relation)
		}
		return fmt.Sprintf("compare %v", e.Indices)
	case KindSwap:
		return fmt.Sprintf("swap %v", e.Indices)
	case KindMark:
		return fmt.Sprintf("mark %v %s", e.Indices, e.Role)
	case KindUnmark:
		return fmt.Sprintf("unmark %v", e.Indices)
	case KindVisit:
		return fmt.Sprintf("visit %v", e.Indices)
	case KindPointer:
		s := "pointer"
		for _, l := range e.Labels {
			s += fmt.Sprintf(" %s=@%d", l.Name, l.Index)
		}
		for _, v := range e.Vars {
			s += fmt.Sprintf(" %s=%s", v.Name, v.Value)
		}
		return s
	case KindHighlight:
		return fmt.Sprintf("highlight %v", e.Lines)
	case KindMessage:
		return fmt.Sprintf("%s: %s", e.MessageKind, e.Text)
	case KindAuxiliary:
		if e.Snapshot == nil {
			return "auxiliary"
		}
		return fmt.Sprintf("auxiliary %s (%s)", e.Snapshot.Kind, e.Snapshot.Status)
	case KindResult:
		return fmt.Sprintf("result %s %v (%s)", e.ResultKind, e.Value, e.Label)
	}
	return string(e.Kind)
}

// IndexBearing reports whether the event's Indices refer to input positions.
func (e Event) IndexBearing() bool {
	switch e.Kind {
	case KindCompare, KindSwap, KindMark, KindUnmark, KindVisit:
		return true
	}
	return false
}
