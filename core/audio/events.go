package audio

import "github.com/dmitrymomot/soundcore/core/models"

// Event names as they appear in logs, metrics and EventName.
const (
	EventReachedEndOfStream = "reached_end_of_stream"
	EventStreamChanged      = "stream_changed"
	EventPositionChanged    = "position_changed"
	EventStateChanged       = "state_changed"
	EventTagsChanged        = "tags_changed"
)

// ReachedEndOfStream is sent when the end of the stream is reached.
type ReachedEndOfStream struct{}

func (ReachedEndOfStream) EventName() string { return EventReachedEndOfStream }

func (ReachedEndOfStream) Args() map[string]any { return map[string]any{} }

// StreamChanged is sent when the current stream changes.
// URI is empty when playback stopped.
type StreamChanged struct {
	URI models.URI
}

func (StreamChanged) EventName() string { return EventStreamChanged }

func (e StreamChanged) Args() map[string]any {
	return map[string]any{"uri": e.URI}
}

// PositionChanged is sent when the position changes by an unexpected amount.
type PositionChanged struct {
	Position models.DurationMs
}

func (PositionChanged) EventName() string { return EventPositionChanged }

func (e PositionChanged) Args() map[string]any {
	return map[string]any{"position": e.Position}
}

// StateChanged is sent after the audio pipeline changes state.
//
// TargetState is the state the pipeline is moving towards. It is empty when
// NewState is the final state; when set, another StateChanged will follow.
type StateChanged struct {
	OldState    models.PlaybackState
	NewState    models.PlaybackState
	TargetState models.PlaybackState
}

func (StateChanged) EventName() string { return EventStateChanged }

func (e StateChanged) Args() map[string]any {
	return map[string]any{
		"old_state":    e.OldState,
		"new_state":    e.NewState,
		"target_state": e.TargetState,
	}
}

// TagsChanged is sent when the current stream's tags change.
// Tags lists the names of the changed tags; fetch values from the audio engine.
type TagsChanged struct {
	Tags []string
}

func (TagsChanged) EventName() string { return EventTagsChanged }

func (e TagsChanged) Args() map[string]any {
	return map[string]any{"tags": e.Tags}
}

// EventNames returns every audio event name in declaration order.
func EventNames() []string {
	return []string{
		EventReachedEndOfStream,
		EventStreamChanged,
		EventPositionChanged,
		EventStateChanged,
		EventTagsChanged,
	}
}
