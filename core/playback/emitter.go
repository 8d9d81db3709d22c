package playback

import (
	"context"

	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/models"
)

// Emitter sends playback events to every registered core listener.
// Each method only forwards to the sender; it never waits for listeners.
type Emitter struct {
	sender listener.Sender
}

// NewEmitter creates an emitter that sends through sender.
func NewEmitter(sender listener.Sender) *Emitter {
	if sender == nil {
		panic("playback: sender must not be nil")
	}
	return &Emitter{sender: sender}
}

func (e *Emitter) send(ctx context.Context, ev listener.Event) error {
	return e.sender.Send(ctx, Capability, ev)
}

// TrackPlaybackPaused sends a TrackPlaybackPaused event.
func (e *Emitter) TrackPlaybackPaused(ctx context.Context, tlTrack models.TlTrack, timePosition models.DurationMs) error {
	return e.send(ctx, TrackPlaybackPaused{TlTrack: tlTrack, TimePosition: timePosition})
}

// TrackPlaybackResumed sends a TrackPlaybackResumed event.
func (e *Emitter) TrackPlaybackResumed(ctx context.Context, tlTrack models.TlTrack, timePosition models.DurationMs) error {
	return e.send(ctx, TrackPlaybackResumed{TlTrack: tlTrack, TimePosition: timePosition})
}

// TrackPlaybackStarted sends a TrackPlaybackStarted event.
func (e *Emitter) TrackPlaybackStarted(ctx context.Context, tlTrack models.TlTrack) error {
	return e.send(ctx, TrackPlaybackStarted{TlTrack: tlTrack})
}

// TrackPlaybackEnded sends a TrackPlaybackEnded event.
func (e *Emitter) TrackPlaybackEnded(ctx context.Context, tlTrack models.TlTrack, timePosition models.DurationMs) error {
	return e.send(ctx, TrackPlaybackEnded{TlTrack: tlTrack, TimePosition: timePosition})
}

// PlaybackStateChanged sends a PlaybackStateChanged event.
func (e *Emitter) PlaybackStateChanged(ctx context.Context, oldState, newState models.PlaybackState) error {
	return e.send(ctx, PlaybackStateChanged{OldState: oldState, NewState: newState})
}

// TracklistChanged sends a TracklistChanged event.
func (e *Emitter) TracklistChanged(ctx context.Context) error {
	return e.send(ctx, TracklistChanged{})
}

// PlaylistsLoaded sends a PlaylistsLoaded event.
func (e *Emitter) PlaylistsLoaded(ctx context.Context) error {
	return e.send(ctx, PlaylistsLoaded{})
}

// PlaylistChanged sends a PlaylistChanged event.
func (e *Emitter) PlaylistChanged(ctx context.Context, playlist models.Playlist) error {
	return e.send(ctx, PlaylistChanged{Playlist: playlist})
}

// PlaylistDeleted sends a PlaylistDeleted event.
func (e *Emitter) PlaylistDeleted(ctx context.Context, uri models.URI) error {
	return e.send(ctx, PlaylistDeleted{URI: uri})
}

// OptionsChanged sends a OptionsChanged event.
func (e *Emitter) OptionsChanged(ctx context.Context) error {
	return e.send(ctx, OptionsChanged{})
}

// VolumeChanged sends a VolumeChanged event.
func (e *Emitter) VolumeChanged(ctx context.Context, volume models.Percentage) error {
	return e.send(ctx, VolumeChanged{Volume: volume})
}

// MuteChanged sends a MuteChanged event.
func (e *Emitter) MuteChanged(ctx context.Context, mute bool) error {
	return e.send(ctx, MuteChanged{Mute: mute})
}

// Seeked sends a Seeked event.
func (e *Emitter) Seeked(ctx context.Context, timePosition models.DurationMs) error {
	return e.send(ctx, Seeked{TimePosition: timePosition})
}

// StreamTitleChanged sends a StreamTitleChanged event.
func (e *Emitter) StreamTitleChanged(ctx context.Context, title string) error {
	return e.send(ctx, StreamTitleChanged{Title: title})
}
