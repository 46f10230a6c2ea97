package observability

import (
	"context"
	"slices"
)

// Recorder keeps every event it receives, in arrival order.
type Recorder struct {
	events []Event
}

func (r *Recorder) OnEvent(_ context.Context, event Event) {
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	return slices.Clone(r.events)
}

// Types returns the type of each recorded event.
func (r *Recorder) Types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.events = nil
}
