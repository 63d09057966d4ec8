// Package trace records algorithm runs and replays them.
//
// A [Trace] is the fully collected event list of one run. Producers are lazy,
// but a player needs to step backwards, so the CLI and the API both record
// first and then walk the recording with a [Player]. [Runner] adds caching
// on top of [Record] so equal runs share one recording.
package trace

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/step"
)

// MaxEvents caps a single recording. Producers are finite for validated
// input, so hitting the cap means a producer is broken.
const MaxEvents = 1 << 20

// Trace is one recorded run.
type Trace struct {
	ID        string         `json:"id"`
	Key       string         `json:"key,omitempty"`
	Algorithm string         `json:"algorithm"`
	Input     catalog.Input  `json:"input"`
	Params    catalog.Params `json:"params,omitempty"`
	Events    []step.Event   `json:"events"`
	CreatedAt time.Time      `json:"created_at"`
}

// Result returns the terminal result event.
func (t *Trace) Result() (step.Event, bool) {
	return step.FinalResult(t.Events)
}

// Len returns the number of events.
func (t *Trace) Len() int { return len(t.Events) }

// Record validates the input, runs the producer to completion and checks
// the trace invariants. Invalid input returns the validator's error and the
// producer is never built. A cancelled ctx abandons the run.
func Record(ctx context.Context, d *catalog.Descriptor, in catalog.Input, p catalog.Params, lim catalog.Limits) (*Trace, error) {
	seq, err := d.Start(in, p, lim)
	if err != nil {
		return nil, err
	}

	hooks := observability.Run()
	hooks.OnRunStart(ctx, d.ID)
	start := time.Now()

	events, err := collect(ctx, seq)
	if err == nil {
		err = step.CheckTrace(events, d.PositionCount(in, p))
	}
	hooks.OnRunComplete(ctx, d.ID, len(events), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &Trace{
		ID:        uuid.NewString(),
		Algorithm: d.ID,
		Input:     in.Clone(),
		Params:    p.Clone(),
		Events:    events,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func collect(ctx context.Context, seq step.Seq) ([]step.Event, error) {
	var events []step.Event
	for ev := range seq {
		if err := ctx.Err(); err != nil {
			return events, err
		}
		events = append(events, ev)
		if len(events) > MaxEvents {
			return events, errors.New(errors.ErrCodeTraceInvariant, "run exceeded %d events", MaxEvents)
		}
	}
	return events, nil
}

// Marshal encodes t as JSON.
func Marshal(t *Trace) ([]byte, error) {
	return json.Marshal(t)
}

// Unmarshal decodes a trace written by [Marshal]. Result values come back
// with their original Go types.
func Unmarshal(data []byte) (*Trace, error) {
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode trace")
	}
	return &t, nil
}
