// Package listener provides typed, fire-and-forget event notification between
// components of a single process.
//
// A producer broadcasts an event to every registered actor that implements the
// event's capability. Delivery is asynchronous: Send enqueues the event on each
// recipient's mailbox and returns without waiting. Each actor handles its mailbox
// sequentially, so events from one producer arrive in the order they were sent.
// Failures inside a handler are logged and never reach the producer or stop the actor.
//
// # Core Components
//
// Event is a named payload. Capability packages such as core/playback define one
// struct per event and implement EventName and Args on it.
//
// Capability groups the handler methods an actor may implement. It is declared once
// per listener interface with NewCapability, which also binds the dispatch function
// that maps an event to the matching method.
//
// Dispatcher resolves recipients through a Registry and enqueues one Envelope per
// recipient. MemoryRegistry is the in-process registry.
//
// Actor owns a mailbox and a message loop around a handler value. Spawn creates,
// registers and starts an actor in one call.
//
// # Basic Usage
//
//	registry := listener.NewMemoryRegistry()
//	dispatcher := listener.NewDispatcher(registry, listener.WithDispatcherLogger(log))
//
//	actor, err := listener.Spawn(ctx, registry, &nowPlaying{},
//		listener.WithActorLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer actor.Stop()
//
//	emitter := playback.NewEmitter(dispatcher)
//	_ = emitter.VolumeChanged(ctx, 42)
//
// # Handler Failures
//
// Every envelope runs inside a recover boundary. The actor logs the outcome and moves on:
//
//   - a dispatch function without a case for the event logs WARN "no handler for event"
//   - a handler returning an error logs ERROR "triggering event failed"
//   - a panicking handler logs ERROR "event handler panicked" with the stack
//
// # Lifecycle
//
// Start blocks until Stop is called or the context is cancelled. Stop closes the
// mailbox and waits, up to the configured timeout, for queued envelopes to be handled.
// Run adapts an actor for errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(actor.Run(ctx))
//
// # Observability
//
// NewMetrics registers Prometheus counters for sent, delivered, dropped and handled
// events. Dispatcher and Actor create OpenTelemetry spans named "listener.send" and
// "listener.handle"; the handle span links back to the send span. Envelope metadata
// is attached to the handler context and available through EventID, EventName,
// CapabilityName and SentAt.
package listener
