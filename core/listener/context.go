package listener

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type eventIDCtx struct{}

// WithEventID attaches an event ID to the context.
func WithEventID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, eventIDCtx{}, id)
}

// EventID extracts the event ID from the context.
// Returns uuid.Nil if not present.
func EventID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(eventIDCtx{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

type eventNameCtx struct{}

// WithEventName attaches an event name to the context.
func WithEventName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, eventNameCtx{}, name)
}

// EventName extracts the event name from the context.
// Returns empty string if not present.
func EventName(ctx context.Context) string {
	if name, ok := ctx.Value(eventNameCtx{}).(string); ok {
		return name
	}
	return ""
}

type capabilityCtx struct{}

// WithCapabilityName attaches the capability name to the context.
func WithCapabilityName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, capabilityCtx{}, name)
}

// CapabilityName extracts the capability name from the context.
// Returns empty string if not present.
func CapabilityName(ctx context.Context) string {
	if name, ok := ctx.Value(capabilityCtx{}).(string); ok {
		return name
	}
	return ""
}

type sentAtCtx struct{}

// WithSentAt attaches the time the event was sent to the context.
func WithSentAt(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, sentAtCtx{}, t)
}

// SentAt extracts the time the event was sent from the context.
// Returns zero time if not present.
func SentAt(ctx context.Context) time.Time {
	if t, ok := ctx.Value(sentAtCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// WithEnvelope attaches all envelope metadata (ID, name, capability, sent time) to the context.
func WithEnvelope(ctx context.Context, env Envelope) context.Context {
	ctx = WithEventID(ctx, env.ID)
	ctx = WithEventName(ctx, env.Name())
	ctx = WithCapabilityName(ctx, env.Capability.Name())
	ctx = WithSentAt(ctx, env.SentAt)
	return ctx
}
