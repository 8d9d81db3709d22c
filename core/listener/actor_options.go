package listener

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ActorOption configures an Actor.
type ActorOption func(*actorOptions)

type actorOptions struct {
	name            string
	mailboxCapacity int
	stopTimeout     time.Duration
	logger          *slog.Logger
	metrics         *Metrics
	tracer          trace.Tracer
}

// WithActorName sets the name used in logs and metrics.
func WithActorName(name string) ActorOption {
	return func(o *actorOptions) {
		o.name = name
	}
}

// WithMailboxCapacity bounds the mailbox. Zero (the default) means unbounded.
// When the bound is reached further envelopes are refused with ErrMailboxFull.
func WithMailboxCapacity(n int) ActorOption {
	return func(o *actorOptions) {
		if n >= 0 {
			o.mailboxCapacity = n
		}
	}
}

// WithStopTimeout configures how long Stop waits for queued envelopes to be handled.
func WithStopTimeout(d time.Duration) ActorOption {
	return func(o *actorOptions) {
		if d > 0 {
			o.stopTimeout = d
		}
	}
}

// WithActorLogger configures structured logging for the actor.
// Handler failures are reported through this logger.
func WithActorLogger(l *slog.Logger) ActorOption {
	return func(o *actorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithActorMetrics enables Prometheus metrics for handled envelopes and mailbox depth.
func WithActorMetrics(m *Metrics) ActorOption {
	return func(o *actorOptions) {
		o.metrics = m
	}
}

// WithActorTracerProvider sets the OpenTelemetry tracer provider.
// If not set, the global provider is used.
func WithActorTracerProvider(tp trace.TracerProvider) ActorOption {
	return func(o *actorOptions) {
		if tp != nil {
			o.tracer = tp.Tracer(tracerName)
		}
	}
}
