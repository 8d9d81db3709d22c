package audio_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soundcore/core/audio"
	"github.com/dmitrymomot/soundcore/core/audio/audiotest"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/models"
)

func TestEvents_NamesAndArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event listener.Event
		name  string
		args  map[string]any
	}{
		{audio.ReachedEndOfStream{}, "reached_end_of_stream", map[string]any{}},
		{audio.StreamChanged{URI: "dummy:a"}, "stream_changed", map[string]any{"uri": models.URI("dummy:a")}},
		{audio.PositionChanged{Position: 10}, "position_changed", map[string]any{"position": models.DurationMs(10)}},
		{
			audio.StateChanged{OldState: models.PlaybackStopped, NewState: models.PlaybackPlaying},
			"state_changed",
			map[string]any{
				"old_state":    models.PlaybackStopped,
				"new_state":    models.PlaybackPlaying,
				"target_state": models.PlaybackState(""),
			},
		},
		{audio.TagsChanged{Tags: []string{"title"}}, "tags_changed", map[string]any{"tags": []string{"title"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.name, tt.event.EventName())
			assert.Equal(t, tt.args, tt.event.Args())
			assert.NoError(t, audio.Capability.Dispatch(context.Background(), audio.BaseListener{}, tt.event))
		})
	}
}

func TestEventNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"reached_end_of_stream",
		"stream_changed",
		"position_changed",
		"state_changed",
		"tags_changed",
	}, audio.EventNames())
}

func TestCapability(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "audio", audio.Capability.Name())
	assert.True(t, audio.Capability.Supports(audio.BaseListener{}))
	assert.False(t, audio.Capability.Supports(struct{}{}))

	err := audio.Dispatch(context.Background(), audio.BaseListener{}, nil)
	assert.ErrorIs(t, err, listener.ErrUnhandledEvent)
}

// stateLog records audio state transitions.
type stateLog struct {
	audio.BaseListener

	mu     sync.Mutex
	states []models.PlaybackState
}

func (s *stateLog) StateChanged(_ context.Context, ev audio.StateChanged) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, ev.NewState)
	return nil
}

func (s *stateLog) States() []models.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PlaybackState(nil), s.states...)
}

func TestEmitter_DeliversInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := listener.NewMemoryRegistry()
	engine := audiotest.New(listener.NewDispatcher(reg))

	log := &stateLog{}
	actor, err := listener.Spawn(ctx, reg, log)
	require.NoError(t, err)

	require.NoError(t, engine.SetURI("dummy:a", false))
	require.True(t, engine.StartPlayback(ctx))
	require.True(t, engine.PausePlayback(ctx))
	require.True(t, engine.StopPlayback(ctx))

	require.Eventually(t, func() bool {
		return len(log.States()) == 3
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []models.PlaybackState{
		models.PlaybackPlaying,
		models.PlaybackPaused,
		models.PlaybackStopped,
	}, log.States())

	require.NoError(t, actor.Stop())
}

func TestNewEmitter_NilSender(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { audio.NewEmitter(nil) })
}
