package trace

import (
	"maps"
	"slices"

	"github.com/matzehuels/stepviz/pkg/step"
)

// State is everything a renderer needs to draw one point of a trace. It is
// the fold of events [0, Step) over the input.
type State struct {
	// Step is the number of events applied.
	Step int

	// Values is the input array with every swap so far applied.
	Values []int

	// Text holds the runes of string input.
	Text []rune

	// Roles maps positions to their latest mark. Unmarked positions are
	// absent.
	Roles map[int]step.Role

	// Comparing and Swapped hold the indices of the most recent event when
	// it was a compare or swap, and are empty otherwise.
	Comparing []int
	Swapped   []int

	// Visited is the position of the most recent visit, or -1.
	Visited int

	Labels  []step.Label
	Vars    []step.Var
	Caption string

	// Lines are the highlighted pseudocode lines, 1-based.
	Lines []int

	Message     string
	MessageKind step.MessageKind

	// Snapshot is the latest auxiliary structure.
	Snapshot *step.Snapshot

	// Result is set once the terminal event has been applied.
	Result *step.Event
}

// Role returns the mark on position i.
func (s State) Role(i int) step.Role {
	return s.Roles[i]
}

func initialState(t *Trace) State {
	return State{
		Values:  slices.Clone(t.Input.Values),
		Text:    []rune(t.Input.Text),
		Roles:   map[int]step.Role{},
		Visited: -1,
	}
}

// apply folds ev into s. Slices and maps are replaced rather than modified
// so States handed out earlier keep their contents.
func (s *State) apply(ev step.Event) {
	s.Step++
	s.Comparing, s.Swapped = nil, nil

	switch ev.Kind {
	case step.KindCompare:
		s.Comparing = ev.Indices
	case step.KindSwap:
		s.Swapped = ev.Indices
		i, j := ev.Indices[0], ev.Indices[1]
		if i < len(s.Values) && j < len(s.Values) {
			s.Values = slices.Clone(s.Values)
			s.Values[i], s.Values[j] = s.Values[j], s.Values[i]
		}
	case step.KindMark:
		s.Roles = maps.Clone(s.Roles)
		for _, i := range ev.Indices {
			s.Roles[i] = ev.Role
		}
	case step.KindUnmark:
		s.Roles = maps.Clone(s.Roles)
		for _, i := range ev.Indices {
			delete(s.Roles, i)
		}
	case step.KindVisit:
		if len(ev.Indices) > 0 {
			s.Visited = ev.Indices[len(ev.Indices)-1]
		}
	case step.KindPointer:
		s.Labels, s.Vars, s.Caption = ev.Labels, ev.Vars, ev.Caption
	case step.KindHighlight:
		s.Lines = ev.Lines
	case step.KindMessage:
		s.Message, s.MessageKind = ev.Text, ev.MessageKind
	case step.KindAuxiliary:
		s.Snapshot = ev.Snapshot
	case step.KindResult:
		res := ev
		s.Result = &res
	}
}

// Player is a cursor over a recorded trace. The zero cursor shows the input
// before any event; Next applies one event.
//
// Stepping backwards re-folds from the start, which is cheap at the input
// sizes the catalog allows and keeps events immutable.
type Player struct {
	trace  *Trace
	cursor int
	state  State
}

// NewPlayer returns a player positioned before the first event.
func NewPlayer(t *Trace) *Player {
	return &Player{trace: t, state: initialState(t)}
}

// Trace returns the trace being played.
func (p *Player) Trace() *Trace { return p.trace }

// Len returns the number of events.
func (p *Player) Len() int { return len(p.trace.Events) }

// Position returns the number of events applied.
func (p *Player) Position() int { return p.cursor }

// Done reports whether every event has been applied.
func (p *Player) Done() bool { return p.cursor >= len(p.trace.Events) }

// Next applies the next event. It returns false at the end of the trace.
func (p *Player) Next() bool {
	if p.Done() {
		return false
	}
	p.state.apply(p.trace.Events[p.cursor])
	p.cursor++
	return true
}

// Prev undoes the last event. It returns false at the start.
func (p *Player) Prev() bool {
	if p.cursor == 0 {
		return false
	}
	p.Seek(p.cursor - 1)
	return true
}

// Seek moves to position n, clamped to [0, Len()].
func (p *Player) Seek(n int) {
	n = max(0, min(n, p.Len()))
	if n < p.cursor {
		p.Reset()
	}
	for p.cursor < n {
		p.Next()
	}
}

// Reset returns to the initial state.
func (p *Player) Reset() {
	p.cursor = 0
	p.state = initialState(p.trace)
}

// Current returns the most recently applied event.
func (p *Player) Current() (step.Event, bool) {
	if p.cursor == 0 {
		return step.Event{}, false
	}
	return p.trace.Events[p.cursor-1], true
}

// State returns the fold at the current position.
func (p *Player) State() State { return p.state }

// StateAt returns the fold after n events without moving the cursor.
func StateAt(t *Trace, n int) State {
	s := initialState(t)
	n = max(0, min(n, len(t.Events)))
	for _, ev := range t.Events[:n] {
		s.apply(ev)
	}
	return s
}
