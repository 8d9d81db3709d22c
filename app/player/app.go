package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/soundcore/core/audio"
	"github.com/dmitrymomot/soundcore/core/config"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/playback"
)

var (
	// ErrAlreadyRunning is returned when Run is called on an app that is already running.
	ErrAlreadyRunning = errors.New("app already running")
	// ErrStopped is returned by Run and Listen once a previous Run has returned.
	// An App runs once; build a new one to run again.
	ErrStopped = errors.New("app already stopped")
)

// App wires a registry, a dispatcher and the core and audio emitters together,
// and runs every registered listener actor until its context is cancelled.
type App struct {
	config         Config
	logger         *slog.Logger
	registry       *listener.MemoryRegistry
	dispatcher     *listener.Dispatcher
	metrics        *listener.Metrics
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
	playback       *playback.Emitter
	audio          *audio.Emitter

	mu       sync.Mutex
	actors   []*listener.Actor
	group    *errgroup.Group
	groupCtx context.Context
	stopped  bool

	errMu   sync.Mutex
	runErrs []error
}

type AppOption func(*App) error

func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{
		config:   cfg,
		registry: listener.NewMemoryRegistry(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.NewFromConfig(app.config.Log,
			logger.WithAttr(slog.String("service", app.config.AppName)))
	}

	metrics, err := listener.NewMetrics(app.registerer)
	if err != nil {
		return nil, err
	}
	app.metrics = metrics

	dispatcherOpts := []listener.DispatcherOption{
		listener.WithDispatcherLogger(app.logger.With(logger.Component("dispatcher"))),
		listener.WithDispatcherMetrics(app.metrics),
	}
	if app.tracerProvider != nil {
		dispatcherOpts = append(dispatcherOpts, listener.WithTracerProvider(app.tracerProvider))
	}
	app.dispatcher = listener.NewDispatcher(app.registry, dispatcherOpts...)

	app.playback = playback.NewEmitter(app.dispatcher)
	app.audio = audio.NewEmitter(app.dispatcher)

	return app, nil
}

// Config returns the loaded configuration.
func (a *App) Config() Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Registry returns the recipient registry.
func (a *App) Registry() *listener.MemoryRegistry { return a.registry }

// Dispatcher returns the dispatcher shared by both emitters.
func (a *App) Dispatcher() *listener.Dispatcher { return a.dispatcher }

// Metrics returns the listener metrics.
func (a *App) Metrics() *listener.Metrics { return a.metrics }

// Playback returns the emitter for core events.
func (a *App) Playback() *playback.Emitter { return a.playback }

// Audio returns the emitter for audio events.
func (a *App) Audio() *audio.Emitter { return a.audio }

// Listen registers handler as a new actor. The handler receives events for every
// capability it implements as soon as Listen returns; its loop runs while Run does.
// Envelopes sent before Run starts are kept and handled once it does.
func (a *App) Listen(handler any, opts ...listener.ActorOption) (*listener.Actor, error) {
	actorOpts := []listener.ActorOption{
		listener.WithActorLogger(a.logger.With(logger.Component("listener"))),
		listener.WithActorMetrics(a.metrics),
	}
	if a.tracerProvider != nil {
		actorOpts = append(actorOpts, listener.WithActorTracerProvider(a.tracerProvider))
	}

	a.mu.Lock()
	stopped := a.stopped
	a.mu.Unlock()
	if stopped {
		return nil, ErrStopped
	}

	actor, err := listener.NewActorFromConfig(a.config.Listener, handler, append(actorOpts, opts...)...)
	if err != nil {
		return nil, err
	}

	if err := a.registry.Register(actor); err != nil {
		return nil, err
	}
	actor.OnStop(func() { a.registry.Unregister(actor.ID()) })

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		a.registry.Unregister(actor.ID())
		return nil, ErrStopped
	}
	a.actors = append(a.actors, actor)
	if a.group != nil {
		a.goActor(actor)
	}

	a.logger.Debug("listener registered",
		logger.Actor(actor.Name()),
		logger.Recipient(actor.ID()))

	return actor, nil
}

// Run starts every registered actor and blocks until ctx is cancelled.
// Actors are then stopped, each draining its queued events within the stop timeout.
// The returned error joins every actor that failed to stop in time.
// Run can be called once per App.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.group != nil {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	if a.stopped {
		a.mu.Unlock()
		return ErrStopped
	}

	g, gctx := errgroup.WithContext(ctx)
	a.group, a.groupCtx = g, gctx

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	for _, actor := range a.actors {
		a.goActor(actor)
	}
	count := len(a.actors)
	a.mu.Unlock()

	a.logger.InfoContext(ctx, "application started",
		slog.String("app", a.config.AppName),
		logger.Count("listeners", count))

	_ = g.Wait()

	a.mu.Lock()
	a.group, a.groupCtx = nil, nil
	a.stopped = true
	a.mu.Unlock()

	a.errMu.Lock()
	errs := a.runErrs
	a.runErrs = nil
	a.errMu.Unlock()

	if len(errs) > 0 {
		a.logger.ErrorContext(ctx, "application stopped with error", logger.Errors(errs...))
		return errors.Join(errs...)
	}

	a.logger.InfoContext(ctx, "application stopped")
	return nil
}

// goActor runs actor in the current group. a.mu must be held.
func (a *App) goActor(actor *listener.Actor) {
	run := actor.Run(a.groupCtx)
	a.group.Go(func() error {
		if err := run(); err != nil {
			a.errMu.Lock()
			a.runErrs = append(a.runErrs, fmt.Errorf("listener %s: %w", actor.Name(), err))
			a.errMu.Unlock()
			return err
		}
		return nil
	})
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

func WithRegistry(registry *listener.MemoryRegistry) AppOption {
	return func(app *App) error {
		if registry == nil {
			return errors.New("registry cannot be nil")
		}
		app.registry = registry
		return nil
	}
}

// WithMetricsRegisterer registers the listener metrics with reg.
// Without it metrics are collected but not exported.
func WithMetricsRegisterer(reg prometheus.Registerer) AppOption {
	return func(app *App) error {
		if reg == nil {
			return errors.New("metrics registerer cannot be nil")
		}
		app.registerer = reg
		return nil
	}
}

func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(app *App) error {
		if tp == nil {
			return errors.New("tracer provider cannot be nil")
		}
		app.tracerProvider = tp
		return nil
	}
}
