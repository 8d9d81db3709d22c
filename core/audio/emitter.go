package audio

import (
	"context"

	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/models"
)

// Emitter sends audio events to every registered audio listener.
type Emitter struct {
	sender listener.Sender
}

// NewEmitter creates an emitter that sends through sender.
func NewEmitter(sender listener.Sender) *Emitter {
	if sender == nil {
		panic("audio: sender must not be nil")
	}
	return &Emitter{sender: sender}
}

func (e *Emitter) send(ctx context.Context, ev listener.Event) error {
	return e.sender.Send(ctx, Capability, ev)
}

// ReachedEndOfStream sends a ReachedEndOfStream event.
func (e *Emitter) ReachedEndOfStream(ctx context.Context) error {
	return e.send(ctx, ReachedEndOfStream{})
}

// StreamChanged sends a StreamChanged event. Pass an empty uri when playback stopped.
func (e *Emitter) StreamChanged(ctx context.Context, uri models.URI) error {
	return e.send(ctx, StreamChanged{URI: uri})
}

// PositionChanged sends a PositionChanged event.
func (e *Emitter) PositionChanged(ctx context.Context, position models.DurationMs) error {
	return e.send(ctx, PositionChanged{Position: position})
}

// StateChanged sends a StateChanged event. Pass an empty targetState when newState is final.
func (e *Emitter) StateChanged(ctx context.Context, oldState, newState, targetState models.PlaybackState) error {
	return e.send(ctx, StateChanged{OldState: oldState, NewState: newState, TargetState: targetState})
}

// TagsChanged sends a TagsChanged event.
func (e *Emitter) TagsChanged(ctx context.Context, tags []string) error {
	return e.send(ctx, TagsChanged{Tags: tags})
}
