package step

import "slices"

// Constructors are pure data builders. They never validate bounds: producers
// only reference positions they are iterating over themselves.

// Compare records that positions i and j are being compared.
func Compare(i, j int, rel Relation) Event {
	return Event{Kind: KindCompare, Indices: []int{i, j}, Relation: rel}
}

// Swap records that positions i and j exchange values.
func Swap(i, j int) Event {
	return Event{Kind: KindSwap, Indices: []int{i, j}}
}

// Mark tags one or more positions with role.
func Mark(role Role, indices ...int) Event {
	return Event{Kind: KindMark, Indices: slices.Clone(indices), Role: role}
}

// Unmark clears the tag on one or more positions.
func Unmark(indices ...int) Event {
	return Event{Kind: KindUnmark, Indices: slices.Clone(indices)}
}

// Visit records that position i was inspected.
func Visit(i int) Event {
	return Event{Kind: KindVisit, Indices: []int{i}}
}

// Pointer snapshots the variables panel.
func Pointer(labels []Label, vars []Var, caption string) Event {
	return Event{
		Kind:    KindPointer,
		Labels:  slices.Clone(labels),
		Vars:    slices.Clone(vars),
		Caption: caption,
	}
}

// Vars is shorthand for a pointer event with named values only.
func Vars(vars ...Var) Event {
	return Pointer(nil, vars, "")
}

// Highlight maps the current step to pseudocode lines (1-based).
func Highlight(lines ...int) Event {
	return Event{Kind: KindHighlight, Lines: slices.Clone(lines)}
}

// Message narrates a step. line is an optional 1-based pseudocode line; 0
// means none.
func Message(kind MessageKind, text string, line int) Event {
	return Event{Kind: KindMessage, MessageKind: kind, Text: text, Line: line}
}

// Info is a [MessageInfo] narration.
func Info(text string) Event { return Message(MessageInfo, text, 0) }

// Progress is a [MessageStep] narration.
func Progress(text string) Event { return Message(MessageStep, text, 0) }

// Explain is a [MessageExplanation] narration.
func Explain(text string) Event { return Message(MessageExplanation, text, 0) }

// Auxiliary attaches a full structure snapshot. The snapshot is cloned so
// later changes by the producer cannot leak into a yielded event.
func Auxiliary(s Snapshot) Event {
	c := s.Clone()
	return Event{Kind: KindAuxiliary, Snapshot: &c}
}

// Result is the terminal event carrying the algorithm's answer. Slice values
// are cloned.
func Result(kind ResultKind, value any, label string) Event {
	if v, ok := value.([]int); ok {
		value = slices.Clone(v)
	}
	return Event{Kind: KindResult, ResultKind: kind, Value: value, Label: label}
}

// Span returns the positions lo..hi-1, for marking ranges.
func Span(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
