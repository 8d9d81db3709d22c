package playback

import (
	"context"

	"github.com/dmitrymomot/soundcore/core/listener"
)

// Listener receives events from the playback core.
// Embed BaseListener and override only the methods you need.
type Listener interface {
	TrackPlaybackPaused(ctx context.Context, ev TrackPlaybackPaused) error
	TrackPlaybackResumed(ctx context.Context, ev TrackPlaybackResumed) error
	TrackPlaybackStarted(ctx context.Context, ev TrackPlaybackStarted) error
	TrackPlaybackEnded(ctx context.Context, ev TrackPlaybackEnded) error
	PlaybackStateChanged(ctx context.Context, ev PlaybackStateChanged) error
	TracklistChanged(ctx context.Context, ev TracklistChanged) error
	PlaylistsLoaded(ctx context.Context, ev PlaylistsLoaded) error
	PlaylistChanged(ctx context.Context, ev PlaylistChanged) error
	PlaylistDeleted(ctx context.Context, ev PlaylistDeleted) error
	OptionsChanged(ctx context.Context, ev OptionsChanged) error
	VolumeChanged(ctx context.Context, ev VolumeChanged) error
	MuteChanged(ctx context.Context, ev MuteChanged) error
	Seeked(ctx context.Context, ev Seeked) error
	StreamTitleChanged(ctx context.Context, ev StreamTitleChanged) error
}

// Capability is the "core" listener capability.
var Capability = listener.NewCapability[Listener]("core", Dispatch)

// Dispatch calls the Listener method matching ev.
func Dispatch(ctx context.Context, l Listener, ev listener.Event) error {
	switch e := ev.(type) {
	case TrackPlaybackPaused:
		return l.TrackPlaybackPaused(ctx, e)
	case TrackPlaybackResumed:
		return l.TrackPlaybackResumed(ctx, e)
	case TrackPlaybackStarted:
		return l.TrackPlaybackStarted(ctx, e)
	case TrackPlaybackEnded:
		return l.TrackPlaybackEnded(ctx, e)
	case PlaybackStateChanged:
		return l.PlaybackStateChanged(ctx, e)
	case TracklistChanged:
		return l.TracklistChanged(ctx, e)
	case PlaylistsLoaded:
		return l.PlaylistsLoaded(ctx, e)
	case PlaylistChanged:
		return l.PlaylistChanged(ctx, e)
	case PlaylistDeleted:
		return l.PlaylistDeleted(ctx, e)
	case OptionsChanged:
		return l.OptionsChanged(ctx, e)
	case VolumeChanged:
		return l.VolumeChanged(ctx, e)
	case MuteChanged:
		return l.MuteChanged(ctx, e)
	case Seeked:
		return l.Seeked(ctx, e)
	case StreamTitleChanged:
		return l.StreamTitleChanged(ctx, e)
	default:
		return listener.Unhandled(ev)
	}
}

// BaseListener implements every Listener method as a no-op.
type BaseListener struct{}

var _ Listener = BaseListener{}

func (BaseListener) TrackPlaybackPaused(context.Context, TrackPlaybackPaused) error   { return nil }
func (BaseListener) TrackPlaybackResumed(context.Context, TrackPlaybackResumed) error { return nil }
func (BaseListener) TrackPlaybackStarted(context.Context, TrackPlaybackStarted) error { return nil }
func (BaseListener) TrackPlaybackEnded(context.Context, TrackPlaybackEnded) error     { return nil }
func (BaseListener) PlaybackStateChanged(context.Context, PlaybackStateChanged) error { return nil }
func (BaseListener) TracklistChanged(context.Context, TracklistChanged) error         { return nil }
func (BaseListener) PlaylistsLoaded(context.Context, PlaylistsLoaded) error           { return nil }
func (BaseListener) PlaylistChanged(context.Context, PlaylistChanged) error           { return nil }
func (BaseListener) PlaylistDeleted(context.Context, PlaylistDeleted) error           { return nil }
func (BaseListener) OptionsChanged(context.Context, OptionsChanged) error             { return nil }
func (BaseListener) VolumeChanged(context.Context, VolumeChanged) error               { return nil }
func (BaseListener) MuteChanged(context.Context, MuteChanged) error                   { return nil }
func (BaseListener) Seeked(context.Context, Seeked) error                             { return nil }
func (BaseListener) StreamTitleChanged(context.Context, StreamTitleChanged) error     { return nil }
