package step

// Emitter wraps a yield function and remembers when the consumer stops.
// After the first refused event every further Emit is a no-op, which keeps
// recursive producers from calling yield after it returned false.
type Emitter struct {
	yield   func(Event) bool
	stopped bool
	count   int
}

// NewEmitter wraps yield.
func NewEmitter(yield func(Event) bool) *Emitter {
	return &Emitter{yield: yield}
}

// Emit yields events in order. It returns false once the consumer has
// stopped pulling; the producer should return promptly.
func (e *Emitter) Emit(events ...Event) bool {
	for _, ev := range events {
		if e.stopped {
			return false
		}
		if !e.yield(ev) {
			e.stopped = true
			return false
		}
		e.count++
	}
	return !e.stopped
}

// Stopped reports whether the consumer has stopped pulling.
func (e *Emitter) Stopped() bool { return e.stopped }

// Count returns the number of events accepted by the consumer.
func (e *Emitter) Count() int { return e.count }

// Finish emits a terminal narration followed by the result.
func (e *Emitter) Finish(text string, kind ResultKind, value any, label string) bool {
	return e.Emit(Info(text), Result(kind, value, label))
}
