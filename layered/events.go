package layered

import "github.com/tailored-agentic-units/layered/observability"

const (
	EventCreate     observability.EventType = "layered.create"
	EventSet        observability.EventType = "layered.set"
	EventDelete     observability.EventType = "layered.delete"
	EventGetMiss    observability.EventType = "layered.get.miss"
	EventDeleteMiss observability.EventType = "layered.delete.miss"
)
