package listener_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/soundcore/core/listener"
)

func TestNewDispatcher_NilRegistry(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		listener.NewDispatcher(nil)
	})
}

func TestDispatcher_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no recipients is a no-op", func(t *testing.T) {
		t.Parallel()

		d := listener.NewDispatcher(listener.NewMemoryRegistry())
		assert.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))
	})

	t.Run("zero capability", func(t *testing.T) {
		t.Parallel()

		d := listener.NewDispatcher(listener.NewMemoryRegistry())
		err := d.Send(ctx, listener.Capability{}, Hello{Name: "ann"})
		assert.ErrorIs(t, err, listener.ErrUnknownCapability)
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()

		d := listener.NewDispatcher(listener.NewMemoryRegistry())
		err := d.Send(ctx, greeterCapability, nil)
		assert.ErrorIs(t, err, listener.ErrInvalidEvent)
	})

	t.Run("one envelope per supporting recipient", func(t *testing.T) {
		t.Parallel()

		reg := listener.NewMemoryRegistry()
		a := newFakeRecipient(&recorder{})
		b := newFakeRecipient(&recorder{})
		ticker := newFakeRecipient(&tickRecorder{})
		for _, r := range []*fakeRecipient{a, ticker, b} {
			require.NoError(t, reg.Register(r))
		}

		sentAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		d := listener.NewDispatcher(reg, listener.WithClock(func() time.Time { return sentAt }))

		require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))

		require.Len(t, a.Envelopes(), 1)
		require.Len(t, b.Envelopes(), 1)
		assert.Empty(t, ticker.Envelopes())

		envA, envB := a.Envelopes()[0], b.Envelopes()[0]
		assert.Equal(t, envA.ID, envB.ID)
		assert.NotEqual(t, envA.ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, "hello", envA.Name())
		assert.Equal(t, Hello{Name: "ann"}, envA.Event)
		assert.Equal(t, "greeter", envA.Capability.Name())
		assert.Equal(t, sentAt, envA.SentAt)
	})

	t.Run("each send gets a new id", func(t *testing.T) {
		t.Parallel()

		reg := listener.NewMemoryRegistry()
		r := newFakeRecipient(&recorder{})
		require.NoError(t, reg.Register(r))
		d := listener.NewDispatcher(reg)

		require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))
		require.NoError(t, d.Send(ctx, greeterCapability, Bye{}))

		envs := r.Envelopes()
		require.Len(t, envs, 2)
		assert.NotEqual(t, envs[0].ID, envs[1].ID)
		assert.Equal(t, "bye", envs[1].Name())
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		t.Parallel()

		lookupErr := errors.New("registry offline")
		d := listener.NewDispatcher(failingRegistry{err: lookupErr})

		err := d.Send(ctx, greeterCapability, Hello{Name: "ann"})
		require.ErrorIs(t, err, lookupErr)
		assert.Contains(t, err.Error(), "greeter")
	})

	t.Run("refused delivery does not stop the others", func(t *testing.T) {
		t.Parallel()

		reg := listener.NewMemoryRegistry()
		closed := newFakeRecipient(&recorder{})
		closed.err = listener.ErrMailboxClosed
		open := newFakeRecipient(&recorder{})
		require.NoError(t, reg.Register(closed))
		require.NoError(t, reg.Register(open))

		log, buf := newTestLogger()
		d := listener.NewDispatcher(reg, listener.WithDispatcherLogger(log))

		require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))
		assert.Len(t, open.Envelopes(), 1)
		assert.Contains(t, buf.String(), "event not delivered")
	})

	t.Run("logs payload at debug level", func(t *testing.T) {
		t.Parallel()

		reg := listener.NewMemoryRegistry()
		require.NoError(t, reg.Register(newFakeRecipient(&recorder{})))

		log, buf := newTestLogger()
		d := listener.NewDispatcher(reg, listener.WithDispatcherLogger(log))

		require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))

		out := buf.String()
		assert.Contains(t, out, "sending event")
		assert.Contains(t, out, "event=hello")
		assert.Contains(t, out, "payload.name=ann")
		assert.Contains(t, out, "recipients=1")
	})
}

func TestDispatcher_SendDoesNotWaitForHandlers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := listener.NewMemoryRegistry()

	block := make(chan struct{})
	r := &recorder{block: block}
	actor, err := listener.Spawn(ctx, reg, r)
	require.NoError(t, err)

	d := listener.NewDispatcher(reg)

	done := make(chan error, 1)
	go func() {
		done <- d.Send(ctx, greeterCapability, Hello{Name: "ann"})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a handler")
	}
	assert.Empty(t, r.Calls())

	close(block)
	require.Eventually(t, func() bool {
		return len(r.Calls()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, actor.Stop())
}

func TestDispatcher_Metrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	metrics, err := listener.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	reg := listener.NewMemoryRegistry()
	full := newFakeRecipient(&recorder{})
	full.err = listener.ErrMailboxFull
	require.NoError(t, reg.Register(newFakeRecipient(&recorder{})))
	require.NoError(t, reg.Register(newFakeRecipient(&recorder{})))
	require.NoError(t, reg.Register(full))

	d := listener.NewDispatcher(reg, listener.WithDispatcherMetrics(metrics))

	require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))
	require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "bob"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Sent("greeter", "hello")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Delivered("greeter", "hello")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Dropped("greeter", "full")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Dropped("greeter", "closed")))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	promReg := prometheus.NewRegistry()
	_, err := listener.NewMetrics(promReg)
	require.NoError(t, err)

	_, err = listener.NewMetrics(promReg)
	assert.Error(t, err)

	m, err := listener.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *listener.Metrics

	assert.NotPanics(t, func() {
		assert.Equal(t, 0.0, testutil.ToFloat64(m.Sent("core", "volume_changed")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.Delivered("core", "volume_changed")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.Dropped("core", "closed")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.Handled("core", "volume_changed", listener.ResultOK)))
	})
}

func TestDispatcher_Tracing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reg := listener.NewMemoryRegistry()
	r := &recorder{}
	actor, err := listener.Spawn(ctx, reg, r, listener.WithActorTracerProvider(tp))
	require.NoError(t, err)

	d := listener.NewDispatcher(reg, listener.WithTracerProvider(tp))
	require.NoError(t, d.Send(ctx, greeterCapability, Hello{Name: "ann"}))

	require.Eventually(t, func() bool {
		return len(r.Calls()) == 1
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, actor.Stop())

	var send, handle sdktrace.ReadOnlySpan
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "listener.send":
			send = s
		case "listener.handle":
			handle = s
		}
	}
	require.NotNil(t, send)
	require.NotNil(t, handle)

	assert.Equal(t, trace.SpanKindProducer, send.SpanKind())
	assert.Equal(t, trace.SpanKindConsumer, handle.SpanKind())
	require.Len(t, handle.Links(), 1)
	assert.Equal(t, send.SpanContext().SpanID(), handle.Links()[0].SpanContext.SpanID())
	assert.Equal(t, send.SpanContext().TraceID(), handle.Links()[0].SpanContext.TraceID())
}
