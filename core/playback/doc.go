// Package playback defines the "core" listener capability: events about track
// playback, the tracklist, playlists, options, volume and stream metadata.
//
// Implement Listener (usually by embedding BaseListener) and register the value
// as an actor to receive events. Producers use an Emitter:
//
//	type nowPlaying struct {
//		playback.BaseListener
//	}
//
//	func (n *nowPlaying) TrackPlaybackStarted(ctx context.Context, ev playback.TrackPlaybackStarted) error {
//		fmt.Println("now playing:", ev.TlTrack.Track.Name)
//		return nil
//	}
//
//	actor, _ := listener.Spawn(ctx, registry, &nowPlaying{})
//	emitter := playback.NewEmitter(dispatcher)
//	_ = emitter.TrackPlaybackStarted(ctx, tlTrack)
package playback
