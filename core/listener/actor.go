package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/soundcore/core/logger"
)

// Actor is a recipient with its own mailbox and sequential message loop.
// Envelopes are handled one at a time in the order they were enqueued.
type Actor struct {
	id          uuid.UUID
	name        string
	handler     any
	mailbox     *mailbox
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	stopTimeout time.Duration

	mu      sync.Mutex
	started bool
	running bool
	done    chan struct{}
	onStop  []func()

	eventsProcessed atomic.Int64
	eventsFailed    atomic.Int64
	lastActivityAt  atomic.Int64
}

// ActorStats provides observability metrics for monitoring and debugging.
type ActorStats struct {
	EventsProcessed int64     // Envelopes handled without error
	EventsFailed    int64     // Envelopes whose handler failed, panicked or was missing
	Queued          int       // Envelopes waiting in the mailbox
	IsRunning       bool      // Whether the message loop is running
	LastActivityAt  time.Time // When the last envelope finished
}

// NewActor creates an actor around handler. The handler receives events for every
// capability whose listener interface it implements. A handler that also implements
// EventHandler gets those events through OnEvent instead of the per-event methods.
//
// Example:
//
//	actor, err := listener.NewActor(&myListener{},
//		listener.WithActorName("scrobbler"),
//		listener.WithActorLogger(log),
//	)
func NewActor(handler any, opts ...ActorOption) (*Actor, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	o := &actorOptions{
		stopTimeout: DefaultConfig().StopTimeout,
		logger:      logger.Discard(),
		tracer:      otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.New()
	name := o.name
	if name == "" {
		name = fmt.Sprintf("%T-%s", handler, id.String()[:8])
	}

	return &Actor{
		id:          id,
		name:        name,
		handler:     handler,
		mailbox:     newMailbox(o.mailboxCapacity),
		logger:      o.logger,
		metrics:     o.metrics,
		tracer:      o.tracer,
		stopTimeout: o.stopTimeout,
	}, nil
}

// NewActorFromConfig creates an Actor from configuration.
// Additional options override config values.
func NewActorFromConfig(cfg Config, handler any, opts ...ActorOption) (*Actor, error) {
	allOpts := append([]ActorOption{
		WithMailboxCapacity(cfg.MailboxCapacity),
		WithStopTimeout(cfg.StopTimeout),
	}, opts...)

	return NewActor(handler, allOpts...)
}

// ID implements Recipient.
func (a *Actor) ID() uuid.UUID {
	return a.id
}

// Name returns the actor name used in logs and metrics.
func (a *Actor) Name() string {
	return a.name
}

// Handler implements Recipient.
func (a *Actor) Handler() any {
	return a.handler
}

// Tell implements Recipient. It enqueues env and returns immediately.
// Envelopes told before Start are kept and handled once the loop runs.
func (a *Actor) Tell(env Envelope) error {
	if err := a.mailbox.push(env); err != nil {
		return err
	}
	a.metrics.setQueued(a.name, a.mailbox.len())
	return nil
}

// OnStop registers fn to run when the message loop exits, before Stop returns.
func (a *Actor) OnStop(fn func()) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStop = append(a.onStop, fn)
}

// Start runs the message loop. This is a blocking operation that returns nil once
// Stop has been called and the mailbox is drained, or ctx.Err() when ctx is cancelled.
// An actor can be started only once.
func (a *Actor) Start(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	return a.loop(ctx)
}

// Stop closes the mailbox and waits for queued envelopes to be handled.
// Returns an error if the stop timeout is exceeded.
// Stop must not be called from the actor's own handler.
func (a *Actor) Stop() error {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return ErrActorNotStarted
	}
	done := a.done
	a.mu.Unlock()

	a.mailbox.close()

	select {
	case <-done:
		return nil
	case <-time.After(a.stopTimeout):
		a.logger.Warn("actor stop timeout exceeded, queued events may be abandoned",
			logger.Actor(a.name),
			logger.Duration(a.stopTimeout))
		return fmt.Errorf("actor %s: stop timeout exceeded after %s", a.name, a.stopTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function runs the loop until ctx is cancelled, then stops the actor
// gracefully so envelopes already enqueued are still handled. Shutdown is bounded by
// the stop timeout: when it is exceeded Run returns the timeout error without waiting
// for the handler in progress.
func (a *Actor) Run(ctx context.Context) func() error {
	return func() error {
		if err := a.begin(); err != nil {
			return err
		}

		loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- a.loop(loopCtx)
		}()

		select {
		case <-ctx.Done():
			if err := a.Stop(); err != nil {
				// The loop is stuck in a handler. Cancel its context and leave it behind.
				cancel()
				return err
			}
			cancel()
			return <-errCh
		case err := <-errCh:
			return err
		}
	}
}

// Stats returns current actor statistics.
func (a *Actor) Stats() ActorStats {
	a.mu.Lock()
	isRunning := a.running
	a.mu.Unlock()

	var lastActivity time.Time
	if ts := a.lastActivityAt.Load(); ts > 0 {
		lastActivity = time.Unix(0, ts)
	}

	return ActorStats{
		EventsProcessed: a.eventsProcessed.Load(),
		EventsFailed:    a.eventsFailed.Load(),
		Queued:          a.mailbox.len(),
		IsRunning:       isRunning,
		LastActivityAt:  lastActivity,
	}
}

func (a *Actor) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return ErrActorAlreadyStarted
	}
	a.started = true
	a.running = true
	a.done = make(chan struct{})
	return nil
}

func (a *Actor) loop(ctx context.Context) error {
	defer a.finish()

	a.logger.DebugContext(ctx, "actor started",
		logger.Actor(a.name),
		logger.Recipient(a.id))

	for {
		batch, closed := a.mailbox.drain()
		for _, env := range batch {
			a.handle(ctx, env)
		}
		a.metrics.setQueued(a.name, a.mailbox.len())

		if closed {
			if len(batch) == 0 {
				a.logger.DebugContext(ctx, "actor stopped", logger.Actor(a.name))
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			a.logger.DebugContext(ctx, "actor context cancelled",
				logger.Actor(a.name),
				logger.Count("queued", a.mailbox.len()))
			return ctx.Err()
		case <-a.mailbox.ready:
		}
	}
}

func (a *Actor) finish() {
	a.mailbox.close()

	a.mu.Lock()
	hooks := a.onStop
	a.onStop = nil
	a.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	a.metrics.forgetActor(a.name)

	a.mu.Lock()
	a.running = false
	close(a.done)
	a.mu.Unlock()
}

// handle runs one envelope inside a recover boundary. Nothing escapes it:
// a failing handler is logged and the loop moves on to the next envelope.
func (a *Actor) handle(ctx context.Context, env Envelope) {
	ctx = WithEnvelope(ctx, env)

	spanOpts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("listener.capability", env.Capability.Name()),
			attribute.String("listener.event", env.Name()),
			attribute.String("listener.actor", a.name),
		),
	}
	if env.link.IsValid() {
		spanOpts = append(spanOpts, trace.WithLinks(trace.Link{SpanContext: env.link}))
	}
	ctx, span := a.tracer.Start(ctx, "listener.handle", spanOpts...)
	defer span.End()

	start := time.Now()

	defer func() {
		a.lastActivityAt.Store(time.Now().UnixNano())

		if r := recover(); r != nil {
			a.eventsFailed.Add(1)
			a.metrics.recordHandled(env, ResultPanic)
			span.SetStatus(codes.Error, "handler panicked")
			a.logger.ErrorContext(ctx, "event handler panicked",
				logger.Event(env.Name()),
				logger.EventID(env.ID),
				logger.Actor(a.name),
				logger.Payload(argsOf(env)),
				logger.Result(ResultPanic),
				logger.Panic(r),
				logger.Stack())
		}
	}()

	err := a.dispatch(ctx, env)

	switch {
	case err == nil:
		a.eventsProcessed.Add(1)
		a.metrics.recordHandled(env, ResultOK)
		a.logger.DebugContext(ctx, "event handled",
			logger.Event(env.Name()),
			logger.EventID(env.ID),
			logger.Actor(a.name),
			logger.Result(ResultOK),
			logger.Elapsed(start))

	case errors.Is(err, ErrUnhandledEvent):
		a.eventsFailed.Add(1)
		a.metrics.recordHandled(env, ResultUnhandled)
		span.SetStatus(codes.Error, "unhandled")
		a.logger.WarnContext(ctx, "no handler for event",
			logger.Event(env.Name()),
			logger.Capability(env.Capability.Name()),
			logger.Actor(a.name),
			logger.Payload(argsOf(env)),
			logger.Result(ResultUnhandled),
			logger.Error(err))

	default:
		a.eventsFailed.Add(1)
		a.metrics.recordHandled(env, ResultFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		a.logger.ErrorContext(ctx, "triggering event failed",
			logger.Event(env.Name()),
			logger.EventID(env.ID),
			logger.Actor(a.name),
			logger.Payload(argsOf(env)),
			logger.Result(ResultFailed),
			logger.Elapsed(start),
			logger.Error(err))
	}
}

func (a *Actor) dispatch(ctx context.Context, env Envelope) error {
	if h, ok := a.handler.(EventHandler); ok {
		return h.OnEvent(ctx, env.Event)
	}
	return env.Capability.Dispatch(ctx, a.handler, env.Event)
}

func argsOf(env Envelope) map[string]any {
	if env.Event == nil {
		return nil
	}
	return env.Event.Args()
}

// Spawn creates an actor for handler, registers it and runs its loop in a new goroutine.
// The actor is unregistered when the loop exits, either through Stop or ctx cancellation.
//
// Example:
//
//	actor, err := listener.Spawn(ctx, registry, &nowPlaying{})
//	defer actor.Stop()
func Spawn(ctx context.Context, reg Registrar, handler any, opts ...ActorOption) (*Actor, error) {
	a, err := NewActor(handler, opts...)
	if err != nil {
		return nil, err
	}

	if err := reg.Register(a); err != nil {
		return nil, err
	}
	a.OnStop(func() { reg.Unregister(a.ID()) })

	if err := a.begin(); err != nil {
		reg.Unregister(a.ID())
		return nil, err
	}

	go func() {
		_ = a.loop(ctx)
	}()

	return a, nil
}
