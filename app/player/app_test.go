package player_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soundcore/app/player"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/models"
	"github.com/dmitrymomot/soundcore/core/playback"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() player.Config {
	return player.Config{
		Listener: listener.DefaultConfig(),
		Log:      logger.Config{Level: "debug", Format: "text"},
		AppName:  "soundcore-test",
	}
}

func newTestApp(t *testing.T, opts ...player.AppOption) (*player.App, *syncBuffer) {
	t.Helper()

	buf := &syncBuffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))

	app, err := player.NewApp(append([]player.AppOption{
		player.WithConfig(testConfig()),
		player.WithLogger(log),
	}, opts...)...)
	require.NoError(t, err)
	return app, buf
}

func runApp(t *testing.T, app *player.App) (context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx)
	}()
	return cancel, errCh
}

func TestApp_RunDeliversEvents(t *testing.T) {
	t.Parallel()

	app, buf := newTestApp(t)
	ctx := context.Background()

	m := &volumeOnly{}
	_, err := app.Listen(m)
	require.NoError(t, err)
	_, err = app.Listen(player.NewEventLogger(app.Logger()))
	require.NoError(t, err)

	// Sent before Run: queued until the actors start.
	require.NoError(t, app.Playback().VolumeChanged(ctx, 42))

	cancel, errCh := runApp(t, app)

	require.Eventually(t, func() bool {
		return m.Volume() == 42
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, app.Audio().StreamChanged(ctx, "dummy:a"))
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "event=stream_changed")
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}

	out := buf.String()
	assert.Contains(t, out, "application started")
	assert.Contains(t, out, "listeners=2")
	assert.Contains(t, out, "event received")
	assert.Contains(t, out, "payload.volume=42")
	assert.Contains(t, out, "capability=core")
	assert.Contains(t, out, "application stopped")
	assert.Equal(t, 0, app.Registry().Len(), "stopped actors are unregistered")
}

// volumeOnly handles the core capability only.
type volumeOnly struct {
	playback.BaseListener

	mu     sync.Mutex
	volume models.Percentage
}

func (v *volumeOnly) VolumeChanged(_ context.Context, ev playback.VolumeChanged) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = ev.Volume
	return nil
}

func (v *volumeOnly) Volume() models.Percentage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func TestApp_ListenWhileRunning(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	ctx := context.Background()

	cancel, errCh := runApp(t, app)
	defer func() {
		cancel()
		<-errCh
	}()

	m := &volumeOnly{}
	actor, err := app.Listen(m)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return actor.Stats().IsRunning
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, app.Playback().VolumeChanged(ctx, 10))
	require.Eventually(t, func() bool {
		return m.Volume() == 10
	}, time.Second, 10*time.Millisecond)
}

func TestApp_RunTwice(t *testing.T) {
	t.Parallel()

	app, buf := newTestApp(t)

	cancel, errCh := runApp(t, app)

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "application started")
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, app.Run(context.Background()), player.ErrAlreadyRunning)

	cancel()
	require.NoError(t, <-errCh)
}

func TestApp_RunOnce(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	_, err := app.Listen(&volumeOnly{})
	require.NoError(t, err)

	cancel, errCh := runApp(t, app)
	cancel()
	require.NoError(t, <-errCh)

	assert.ErrorIs(t, app.Run(context.Background()), player.ErrStopped)

	_, err = app.Listen(&volumeOnly{})
	assert.ErrorIs(t, err, player.ErrStopped)
	assert.Equal(t, 0, app.Registry().Len())
}

// stuckVolume blocks in VolumeChanged until release is closed, ignoring ctx.
type stuckVolume struct {
	playback.BaseListener

	entered chan struct{}
	release chan struct{}
}

func (s *stuckVolume) VolumeChanged(context.Context, playback.VolumeChanged) error {
	close(s.entered)
	<-s.release
	return nil
}

func TestApp_RunStopsWithinTimeout(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Listener.StopTimeout = 50 * time.Millisecond
	app, buf := newTestApp(t, player.WithConfig(cfg))

	stuck := &stuckVolume{entered: make(chan struct{}), release: make(chan struct{})}
	defer close(stuck.release)

	_, err := app.Listen(stuck, listener.WithActorName("stuck"))
	require.NoError(t, err)
	require.NoError(t, app.Playback().VolumeChanged(context.Background(), 5))

	cancel, errCh := runApp(t, app)

	select {
	case <-stuck.entered:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listener stuck")
		assert.Contains(t, err.Error(), "stop timeout exceeded")
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after the stop timeout")
	}

	assert.Contains(t, buf.String(), "application stopped with error")
	assert.Contains(t, buf.String(), "errors.0=")
}

func TestApp_Metrics(t *testing.T) {
	t.Parallel()

	promReg := prometheus.NewRegistry()
	app, _ := newTestApp(t, player.WithMetricsRegisterer(promReg))
	ctx := context.Background()

	_, err := app.Listen(&volumeOnly{})
	require.NoError(t, err)

	require.NoError(t, app.Playback().VolumeChanged(ctx, 1))
	require.NoError(t, app.Playback().VolumeChanged(ctx, 2))
	require.NoError(t, app.Audio().ReachedEndOfStream(ctx))

	assert.Equal(t, 2.0, testutil.ToFloat64(app.Metrics().Sent("core", "volume_changed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(app.Metrics().Delivered("core", "volume_changed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Sent("audio", "reached_end_of_stream")))
	assert.Equal(t, 0.0, testutil.ToFloat64(app.Metrics().Delivered("audio", "reached_end_of_stream")))

	count, err := testutil.GatherAndCount(promReg, "soundcore_listener_events_sent_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestApp_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  player.AppOption
	}{
		{"nil logger", player.WithLogger(nil)},
		{"nil registry", player.WithRegistry(nil)},
		{"nil registerer", player.WithMetricsRegisterer(nil)},
		{"nil tracer provider", player.WithTracerProvider(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := player.NewApp(tt.opt)
			assert.Error(t, err)
		})
	}

	t.Run("shared registry", func(t *testing.T) {
		t.Parallel()

		reg := listener.NewMemoryRegistry()
		app, _ := newTestApp(t, player.WithRegistry(reg))
		_, err := app.Listen(&volumeOnly{})
		require.NoError(t, err)
		assert.Equal(t, 1, reg.Len())
		assert.Same(t, reg, app.Registry())
		assert.Equal(t, "soundcore-test", app.Config().AppName)
	})
}
