package listener

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Event is an immutable, named fact broadcast to every recipient of a capability.
// Each capability package defines one struct type per event.
type Event interface {
	// EventName returns the event name, e.g. "track_playback_paused".
	EventName() string

	// Args returns the payload as named arguments keyed by parameter name.
	Args() map[string]any
}

// Envelope carries a single event to a single recipient.
// All envelopes created by one Send share the same ID and the same Event value.
type Envelope struct {
	ID         uuid.UUID  // Identifier of the send that produced the envelope
	Capability Capability // Capability the event was sent to
	Event      Event      // Event payload, shared between recipients
	SentAt     time.Time  // When the event was sent

	link trace.SpanContext
}

// Name returns the event name.
func (e Envelope) Name() string {
	if e.Event == nil {
		return ""
	}
	return e.Event.EventName()
}
