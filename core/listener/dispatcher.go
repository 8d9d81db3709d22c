package listener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/soundcore/core/logger"
)

const tracerName = "github.com/dmitrymomot/soundcore/core/listener"

// Sender sends an event to every recipient of a capability.
// Typed emitters depend on this interface rather than on *Dispatcher.
type Sender interface {
	Send(ctx context.Context, c Capability, ev Event) error
}

// Dispatcher resolves recipients and enqueues events on their mailboxes.
// It holds no per-event state and is safe for concurrent use.
//
// Example:
//
//	registry := listener.NewMemoryRegistry()
//	dispatcher := listener.NewDispatcher(registry, listener.WithDispatcherLogger(log))
//	err := dispatcher.Send(ctx, playback.Capability, playback.VolumeChanged{Volume: 42})
type Dispatcher struct {
	registry Registry
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	clock    func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// NewDispatcher creates a dispatcher backed by the given registry.
func NewDispatcher(registry Registry, opts ...DispatcherOption) *Dispatcher {
	if registry == nil {
		panic("listener: registry must not be nil")
	}

	d := &Dispatcher{
		registry: registry,
		logger:   logger.Discard(),
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Send delivers ev to every recipient currently registered for c.
//
// Send only enqueues: it returns as soon as every recipient's mailbox has accepted
// (or refused) the envelope and never waits for handlers to run. Handler failures
// and refused deliveries are never reported to the caller.
//
// An error is returned only for programming mistakes: an undeclared capability,
// an invalid event, or a registry that cannot resolve the capability.
func (d *Dispatcher) Send(ctx context.Context, c Capability, ev Event) error {
	if c.IsZero() {
		return ErrUnknownCapability
	}
	if ev == nil || ev.EventName() == "" {
		return ErrInvalidEvent
	}

	name := ev.EventName()

	ctx, span := d.tracer.Start(ctx, "listener.send",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("listener.capability", c.Name()),
			attribute.String("listener.event", name),
		),
	)
	defer span.End()

	recipients, err := d.registry.Lookup(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return fmt.Errorf("lookup %s listeners: %w", c, err)
	}

	if d.logger.Enabled(ctx, slog.LevelDebug) {
		d.logger.DebugContext(ctx, "sending event",
			logger.Event(name),
			logger.Capability(c.Name()),
			logger.Payload(ev.Args()),
			logger.Count("recipients", len(recipients)))
	}

	d.metrics.recordSent(c, name)
	span.SetAttributes(attribute.Int("listener.recipients", len(recipients)))

	if len(recipients) == 0 {
		return nil
	}

	env := Envelope{
		ID:         uuid.New(),
		Capability: c,
		Event:      ev,
		SentAt:     d.clock(),
		link:       span.SpanContext(),
	}

	for _, r := range recipients {
		if err := r.Tell(env); err != nil {
			d.metrics.recordDropped(c, err)
			d.logger.DebugContext(ctx, "event not delivered",
				logger.Event(name),
				logger.EventID(env.ID),
				logger.Recipient(r.ID()),
				logger.Error(err))
			continue
		}
		d.metrics.recordDelivered(c, name)
	}

	return nil
}

// WithDispatcherLogger sets the logger for the dispatcher.
// If not set, log records are discarded.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDispatcherMetrics enables Prometheus metrics for sends and deliveries.
func WithDispatcherMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// If not set, the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) DispatcherOption {
	return func(d *Dispatcher) {
		if tp != nil {
			d.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock overrides the clock used to stamp envelopes.
func WithClock(clock func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}
