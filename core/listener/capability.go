package listener

import (
	"context"
	"fmt"
)

// DispatchFunc maps an event to the matching handler method of a listener.
// It must return an error wrapping ErrUnhandledEvent for events it does not know.
type DispatchFunc[L any] func(ctx context.Context, l L, ev Event) error

// EventHandler is implemented by recipients that take over dispatch for every event.
// When a recipient implements it, the capability's name-based forwarding is bypassed.
//
// Example:
//
//	type recorder struct{ playback.BaseListener }
//
//	func (r *recorder) OnEvent(ctx context.Context, ev listener.Event) error {
//	    log.Println(ev.EventName(), ev.Args())
//	    return nil
//	}
type EventHandler interface {
	OnEvent(ctx context.Context, ev Event) error
}

// Capability is a named set of handler methods an actor may implement.
// The zero value is not a valid capability.
type Capability struct {
	name     string
	supports func(handler any) bool
	dispatch func(ctx context.Context, handler any, ev Event) error
}

// NewCapability declares a capability for listener interface L.
// A handler supports the capability when it implements L.
//
// Example:
//
//	var Capability = listener.NewCapability[Listener]("core", Dispatch)
func NewCapability[L any](name string, dispatch DispatchFunc[L]) Capability {
	if name == "" {
		panic("listener: capability name must not be empty")
	}
	if dispatch == nil {
		panic("listener: capability dispatch must not be nil")
	}

	return Capability{
		name: name,
		supports: func(handler any) bool {
			_, ok := handler.(L)
			return ok
		},
		dispatch: func(ctx context.Context, handler any, ev Event) error {
			l, ok := handler.(L)
			if !ok {
				return fmt.Errorf("%w: %T does not implement %s listener", ErrUnsupportedRecipient, handler, name)
			}
			return dispatch(ctx, l, ev)
		},
	}
}

// Name returns the capability name.
func (c Capability) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c Capability) String() string {
	if c.IsZero() {
		return "<unknown>"
	}
	return c.name
}

// IsZero reports whether c was declared with NewCapability.
func (c Capability) IsZero() bool {
	return c.supports == nil
}

// Supports reports whether handler implements the capability's listener interface.
func (c Capability) Supports(handler any) bool {
	if c.IsZero() || handler == nil {
		return false
	}
	return c.supports(handler)
}

// Dispatch is the default catch-all: it calls the handler method named after the event.
func (c Capability) Dispatch(ctx context.Context, handler any, ev Event) error {
	if c.IsZero() {
		return ErrUnknownCapability
	}
	return c.dispatch(ctx, handler, ev)
}

// Unhandled returns the error a DispatchFunc reports for an event it has no handler for.
func Unhandled(ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: <nil>", ErrUnhandledEvent)
	}
	return fmt.Errorf("%w: %s", ErrUnhandledEvent, ev.EventName())
}
