package models

// Percentage is an integer in the range 0-100, used for volume.
type Percentage int

// DurationMs is a duration or position in milliseconds.
type DurationMs int

// URI identifies a resource such as a track, playlist or stream.
type URI string

// URIScheme is the scheme part of a URI, e.g. "file" or "spotify".
type URIScheme string

// TracklistID identifies a track's position in the tracklist. Never negative.
type TracklistID int

// PlaybackState is the state of the playback or audio engine.
type PlaybackState string

// Playback states.
const (
	PlaybackStopped PlaybackState = "stopped"
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
)

// Valid reports whether s is one of the known playback states.
func (s PlaybackState) Valid() bool {
	switch s {
	case PlaybackStopped, PlaybackPlaying, PlaybackPaused:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s PlaybackState) String() string {
	return string(s)
}

// RefType is the kind of resource a Ref points to.
type RefType string

// Ref types.
const (
	RefTypeAlbum     RefType = "album"
	RefTypeArtist    RefType = "artist"
	RefTypeDirectory RefType = "directory"
	RefTypePlaylist  RefType = "playlist"
	RefTypeTrack     RefType = "track"
)
