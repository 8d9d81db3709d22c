package audio

import (
	"context"

	"github.com/dmitrymomot/soundcore/core/listener"
)

// Listener receives events from the audio engine.
// Embed BaseListener and override only the methods you need.
type Listener interface {
	ReachedEndOfStream(ctx context.Context, ev ReachedEndOfStream) error
	StreamChanged(ctx context.Context, ev StreamChanged) error
	PositionChanged(ctx context.Context, ev PositionChanged) error
	StateChanged(ctx context.Context, ev StateChanged) error
	TagsChanged(ctx context.Context, ev TagsChanged) error
}

// Capability is the "audio" listener capability.
var Capability = listener.NewCapability[Listener]("audio", Dispatch)

// Dispatch calls the Listener method matching ev.
func Dispatch(ctx context.Context, l Listener, ev listener.Event) error {
	switch e := ev.(type) {
	case ReachedEndOfStream:
		return l.ReachedEndOfStream(ctx, e)
	case StreamChanged:
		return l.StreamChanged(ctx, e)
	case PositionChanged:
		return l.PositionChanged(ctx, e)
	case StateChanged:
		return l.StateChanged(ctx, e)
	case TagsChanged:
		return l.TagsChanged(ctx, e)
	default:
		return listener.Unhandled(ev)
	}
}

// BaseListener implements every Listener method as a no-op.
type BaseListener struct{}

var _ Listener = BaseListener{}

func (BaseListener) ReachedEndOfStream(context.Context, ReachedEndOfStream) error { return nil }
func (BaseListener) StreamChanged(context.Context, StreamChanged) error           { return nil }
func (BaseListener) PositionChanged(context.Context, PositionChanged) error       { return nil }
func (BaseListener) StateChanged(context.Context, StateChanged) error             { return nil }
func (BaseListener) TagsChanged(context.Context, TagsChanged) error               { return nil }
