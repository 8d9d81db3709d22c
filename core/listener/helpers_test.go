package listener_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
)

// Greeter is a minimal listener interface used across the package tests.
type Greeter interface {
	Hello(ctx context.Context, name string) error
	Bye(ctx context.Context) error
}

type Hello struct{ Name string }

func (Hello) EventName() string { return "hello" }

func (e Hello) Args() map[string]any { return map[string]any{"name": e.Name} }

type Bye struct{}

func (Bye) EventName() string { return "bye" }

func (Bye) Args() map[string]any { return map[string]any{} }

// Shrug is a valid event the greeter dispatch function has no case for.
type Shrug struct{}

func (Shrug) EventName() string { return "shrug" }

func (Shrug) Args() map[string]any { return map[string]any{} }

func dispatchGreeter(ctx context.Context, l Greeter, ev listener.Event) error {
	switch e := ev.(type) {
	case Hello:
		return l.Hello(ctx, e.Name)
	case Bye:
		return l.Bye(ctx)
	default:
		return listener.Unhandled(ev)
	}
}

var greeterCapability = listener.NewCapability[Greeter]("greeter", dispatchGreeter)

// Ticker is a second capability so tests can check filtering.
type Ticker interface {
	Tick(ctx context.Context, n int) error
}

type Tick struct{ N int }

func (Tick) EventName() string { return "tick" }

func (e Tick) Args() map[string]any { return map[string]any{"n": e.N} }

var tickerCapability = listener.NewCapability[Ticker]("ticker", func(ctx context.Context, l Ticker, ev listener.Event) error {
	if e, ok := ev.(Tick); ok {
		return l.Tick(ctx, e.N)
	}
	return listener.Unhandled(ev)
})

var errGreeting = errors.New("greeting failed")

// recorder implements Greeter and records each call.
type recorder struct {
	mu      sync.Mutex
	calls   []string
	ids     []uuid.UUID
	fail    string
	panicOn string
	block   chan struct{}
}

func (r *recorder) Hello(ctx context.Context, name string) error {
	return r.record(ctx, "hello:"+name)
}

func (r *recorder) Bye(ctx context.Context) error {
	return r.record(ctx, "bye")
}

func (r *recorder) record(ctx context.Context, call string) error {
	if r.block != nil {
		<-r.block
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.ids = append(r.ids, listener.EventID(ctx))
	r.mu.Unlock()

	if r.panicOn != "" && r.panicOn == call {
		panic("boom")
	}
	if r.fail != "" && r.fail == call {
		return errGreeting
	}
	return nil
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) IDs() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.ids...)
}

// tickRecorder implements Ticker only.
type tickRecorder struct {
	mu    sync.Mutex
	ticks []int
}

func (r *tickRecorder) Tick(_ context.Context, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, n)
	return nil
}

func (r *tickRecorder) Ticks() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...)
}

// fakeRecipient is a Recipient without a message loop.
type fakeRecipient struct {
	id      uuid.UUID
	handler any
	err     error

	mu   sync.Mutex
	envs []listener.Envelope
}

func newFakeRecipient(handler any) *fakeRecipient {
	return &fakeRecipient{id: uuid.New(), handler: handler}
}

func (f *fakeRecipient) ID() uuid.UUID { return f.id }

func (f *fakeRecipient) Handler() any { return f.handler }

func (f *fakeRecipient) Tell(env listener.Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envs = append(f.envs, env)
	return nil
}

func (f *fakeRecipient) Envelopes() []listener.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listener.Envelope(nil), f.envs...)
}

// failingRegistry always fails to resolve recipients.
type failingRegistry struct{ err error }

func (f failingRegistry) Lookup(listener.Capability) ([]listener.Recipient, error) {
	return nil, f.err
}

// logBuffer is a goroutine-safe log sink.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *logBuffer) {
	buf := &logBuffer{}
	return logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug)), buf
}
