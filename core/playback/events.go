package playback

import "github.com/dmitrymomot/soundcore/core/models"

// Event names as they appear in logs, metrics and EventName.
const (
	EventTrackPlaybackPaused  = "track_playback_paused"
	EventTrackPlaybackResumed = "track_playback_resumed"
	EventTrackPlaybackStarted = "track_playback_started"
	EventTrackPlaybackEnded   = "track_playback_ended"
	EventPlaybackStateChanged = "playback_state_changed"
	EventTracklistChanged     = "tracklist_changed"
	EventPlaylistsLoaded      = "playlists_loaded"
	EventPlaylistChanged      = "playlist_changed"
	EventPlaylistDeleted      = "playlist_deleted"
	EventOptionsChanged       = "options_changed"
	EventVolumeChanged        = "volume_changed"
	EventMuteChanged          = "mute_changed"
	EventSeeked               = "seeked"
	EventStreamTitleChanged   = "stream_title_changed"
)

// TrackPlaybackPaused is sent whenever track playback is paused.
type TrackPlaybackPaused struct {
	TlTrack      models.TlTrack
	TimePosition models.DurationMs
}

func (TrackPlaybackPaused) EventName() string { return EventTrackPlaybackPaused }

func (e TrackPlaybackPaused) Args() map[string]any {
	return map[string]any{"tl_track": e.TlTrack, "time_position": e.TimePosition}
}

// TrackPlaybackResumed is sent whenever track playback is resumed.
type TrackPlaybackResumed struct {
	TlTrack      models.TlTrack
	TimePosition models.DurationMs
}

func (TrackPlaybackResumed) EventName() string { return EventTrackPlaybackResumed }

func (e TrackPlaybackResumed) Args() map[string]any {
	return map[string]any{"tl_track": e.TlTrack, "time_position": e.TimePosition}
}

// TrackPlaybackStarted is sent whenever a new track starts playing.
type TrackPlaybackStarted struct {
	TlTrack models.TlTrack
}

func (TrackPlaybackStarted) EventName() string { return EventTrackPlaybackStarted }

func (e TrackPlaybackStarted) Args() map[string]any {
	return map[string]any{"tl_track": e.TlTrack}
}

// TrackPlaybackEnded is sent whenever playback of a track ends.
// TimePosition is where playback stopped.
type TrackPlaybackEnded struct {
	TlTrack      models.TlTrack
	TimePosition models.DurationMs
}

func (TrackPlaybackEnded) EventName() string { return EventTrackPlaybackEnded }

func (e TrackPlaybackEnded) Args() map[string]any {
	return map[string]any{"tl_track": e.TlTrack, "time_position": e.TimePosition}
}

// PlaybackStateChanged is sent whenever the playback state changes.
type PlaybackStateChanged struct {
	OldState models.PlaybackState
	NewState models.PlaybackState
}

func (PlaybackStateChanged) EventName() string { return EventPlaybackStateChanged }

func (e PlaybackStateChanged) Args() map[string]any {
	return map[string]any{"old_state": e.OldState, "new_state": e.NewState}
}

// TracklistChanged is sent whenever the tracklist is changed.
type TracklistChanged struct{}

func (TracklistChanged) EventName() string { return EventTracklistChanged }

func (TracklistChanged) Args() map[string]any { return map[string]any{} }

// PlaylistsLoaded is sent when playlists become available or change.
type PlaylistsLoaded struct{}

func (PlaylistsLoaded) EventName() string { return EventPlaylistsLoaded }

func (PlaylistsLoaded) Args() map[string]any { return map[string]any{} }

// PlaylistChanged is sent whenever a playlist is changed.
type PlaylistChanged struct {
	Playlist models.Playlist
}

func (PlaylistChanged) EventName() string { return EventPlaylistChanged }

func (e PlaylistChanged) Args() map[string]any {
	return map[string]any{"playlist": e.Playlist}
}

// PlaylistDeleted is sent whenever a playlist is deleted.
type PlaylistDeleted struct {
	URI models.URI
}

func (PlaylistDeleted) EventName() string { return EventPlaylistDeleted }

func (e PlaylistDeleted) Args() map[string]any {
	return map[string]any{"uri": e.URI}
}

// OptionsChanged is sent whenever an option such as repeat or random changes.
type OptionsChanged struct{}

func (OptionsChanged) EventName() string { return EventOptionsChanged }

func (OptionsChanged) Args() map[string]any { return map[string]any{} }

// VolumeChanged is sent whenever the volume is changed.
type VolumeChanged struct {
	Volume models.Percentage
}

func (VolumeChanged) EventName() string { return EventVolumeChanged }

func (e VolumeChanged) Args() map[string]any {
	return map[string]any{"volume": e.Volume}
}

// MuteChanged is sent whenever the mute state is changed.
type MuteChanged struct {
	Mute bool
}

func (MuteChanged) EventName() string { return EventMuteChanged }

func (e MuteChanged) Args() map[string]any {
	return map[string]any{"mute": e.Mute}
}

// Seeked is sent whenever the time position changes by an unexpected amount,
// e.g. at seek to a new time position.
type Seeked struct {
	TimePosition models.DurationMs
}

func (Seeked) EventName() string { return EventSeeked }

func (e Seeked) Args() map[string]any {
	return map[string]any{"time_position": e.TimePosition}
}

// StreamTitleChanged is sent whenever the currently playing stream title changes.
type StreamTitleChanged struct {
	Title string
}

func (StreamTitleChanged) EventName() string { return EventStreamTitleChanged }

func (e StreamTitleChanged) Args() map[string]any {
	return map[string]any{"title": e.Title}
}

// EventNames returns every core event name in declaration order.
func EventNames() []string {
	return []string{
		EventTrackPlaybackPaused,
		EventTrackPlaybackResumed,
		EventTrackPlaybackStarted,
		EventTrackPlaybackEnded,
		EventPlaybackStateChanged,
		EventTracklistChanged,
		EventPlaylistsLoaded,
		EventPlaylistChanged,
		EventPlaylistDeleted,
		EventOptionsChanged,
		EventVolumeChanged,
		EventMuteChanged,
		EventSeeked,
		EventStreamTitleChanged,
	}
}
