package step

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Collect drains seq into a slice.
func Collect(seq Seq) []Event {
	var out []Event
	for ev := range seq {
		out = append(out, ev)
	}
	return out
}

// Take returns at most n events from seq, abandoning the rest.
func Take(seq Seq, n int) []Event {
	out := make([]Event, 0, n)
	if n <= 0 {
		return out
	}
	for ev := range seq {
		out = append(out, ev)
		if len(out) == n {
			break
		}
	}
	return out
}

// Last returns the final event, or false for an empty trace.
func Last(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	return events[len(events)-1], true
}

// FinalResult returns the last result event of a trace.
func FinalResult(events []Event) (Event, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == KindResult {
			return events[i], true
		}
	}
	return Event{}, false
}

// CheckTrace verifies the invariants of a finished trace. positions is the
// number of addressable input positions; 0 disables the bounds check.
func CheckTrace(events []Event, positions int) error {
	last, ok := Last(events)
	if !ok {
		return errors.New(errors.ErrCodeTraceInvariant, "trace is empty")
	}
	if last.Kind != KindResult {
		return errors.New(errors.ErrCodeTraceInvariant, "trace ends with %s, want result", last.Kind)
	}
	for i, ev := range events {
		if ev.Kind == KindCompare && len(ev.Indices) != 2 {
			return errors.New(errors.ErrCodeTraceInvariant, "event %d: compare carries %d indices", i, len(ev.Indices))
		}
		if ev.Kind == KindSwap && len(ev.Indices) != 2 {
			return errors.New(errors.ErrCodeTraceInvariant, "event %d: swap carries %d indices", i, len(ev.Indices))
		}
		if ev.Kind == KindMark && !ev.Role.Valid() {
			return errors.New(errors.ErrCodeTraceInvariant, "event %d: unknown role %q", i, ev.Role)
		}
		if ev.Kind == KindAuxiliary && ev.Snapshot == nil {
			return errors.New(errors.ErrCodeTraceInvariant, "event %d: auxiliary without snapshot", i)
		}
		if positions <= 0 || !ev.IndexBearing() {
			continue
		}
		for _, idx := range ev.Indices {
			if idx < 0 || idx >= positions {
				return errors.New(errors.ErrCodeTraceInvariant,
					"event %d (%s): index %d outside [0,%d)", i, ev.Kind, idx, positions)
			}
		}
	}
	return nil
}

// UnmarshalJSON restores the Go type of a result value from its JSON form,
// so that a decoded trace compares equal to a freshly produced one.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var raw struct {
		plain
		Value json.RawMessage `json:"value,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event(raw.plain)
	e.Value = nil
	if len(raw.Value) == 0 {
		return nil
	}
	v, err := decodeValue(e.ResultKind, raw.Value)
	if err != nil {
		return fmt.Errorf("decode %s value: %w", e.ResultKind, err)
	}
	e.Value = v
	return nil
}

func decodeValue(kind ResultKind, data json.RawMessage) (any, error) {
	switch kind {
	case ResultSearch, ResultNumber:
		var n int
		err := json.Unmarshal(data, &n)
		return n, err
	case ResultBoolean:
		var b bool
		err := json.Unmarshal(data, &b)
		return b, err
	case ResultIndices, ResultArray:
		ns := []int{}
		err := json.Unmarshal(data, &ns)
		return ns, err
	case ResultText:
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var v any
	err := json.Unmarshal(data, &v)
	return v, err
}
