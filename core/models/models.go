package models

import "slices"

// Artist describes a performer or composer.
type Artist struct {
	URI           URI    `json:"uri,omitempty"`
	Name          string `json:"name,omitempty"`
	SortName      string `json:"sortname,omitempty"`
	MusicBrainzID string `json:"musicbrainz_id,omitempty"`
}

// Equal reports whether a and o describe the same artist.
func (a Artist) Equal(o Artist) bool {
	return a == o
}

// Album describes a released album.
type Album struct {
	URI           URI      `json:"uri,omitempty"`
	Name          string   `json:"name,omitempty"`
	Artists       []Artist `json:"artists,omitempty"`
	NumTracks     int      `json:"num_tracks,omitempty"`
	NumDiscs      int      `json:"num_discs,omitempty"`
	Date          string   `json:"date,omitempty"`
	MusicBrainzID string   `json:"musicbrainz_id,omitempty"`
}

// Equal reports whether a and o describe the same album.
func (a Album) Equal(o Album) bool {
	return a.URI == o.URI &&
		a.Name == o.Name &&
		a.NumTracks == o.NumTracks &&
		a.NumDiscs == o.NumDiscs &&
		a.Date == o.Date &&
		a.MusicBrainzID == o.MusicBrainzID &&
		slices.EqualFunc(a.Artists, o.Artists, Artist.Equal)
}

// Track describes a single playable track.
type Track struct {
	URI           URI        `json:"uri,omitempty"`
	Name          string     `json:"name,omitempty"`
	Artists       []Artist   `json:"artists,omitempty"`
	Album         *Album     `json:"album,omitempty"`
	Composers     []Artist   `json:"composers,omitempty"`
	Performers    []Artist   `json:"performers,omitempty"`
	Genre         string     `json:"genre,omitempty"`
	TrackNo       int        `json:"track_no,omitempty"`
	DiscNo        int        `json:"disc_no,omitempty"`
	Date          string     `json:"date,omitempty"`
	Length        DurationMs `json:"length,omitempty"`
	Bitrate       int        `json:"bitrate,omitempty"`
	Comment       string     `json:"comment,omitempty"`
	MusicBrainzID string     `json:"musicbrainz_id,omitempty"`
	LastModified  int64      `json:"last_modified,omitempty"`
}

// Equal reports whether t and o describe the same track.
func (t Track) Equal(o Track) bool {
	if t.URI != o.URI ||
		t.Name != o.Name ||
		t.Genre != o.Genre ||
		t.TrackNo != o.TrackNo ||
		t.DiscNo != o.DiscNo ||
		t.Date != o.Date ||
		t.Length != o.Length ||
		t.Bitrate != o.Bitrate ||
		t.Comment != o.Comment ||
		t.MusicBrainzID != o.MusicBrainzID ||
		t.LastModified != o.LastModified {
		return false
	}

	switch {
	case t.Album == nil && o.Album == nil:
	case t.Album == nil || o.Album == nil:
		return false
	case !t.Album.Equal(*o.Album):
		return false
	}

	return slices.EqualFunc(t.Artists, o.Artists, Artist.Equal) &&
		slices.EqualFunc(t.Composers, o.Composers, Artist.Equal) &&
		slices.EqualFunc(t.Performers, o.Performers, Artist.Equal)
}

// TlTrack is a track together with its tracklist ID. The same track may appear
// several times in the tracklist, each time with a different ID.
type TlTrack struct {
	TLID  TracklistID `json:"tlid"`
	Track Track       `json:"track"`
}

// Equal reports whether t and o are the same tracklist entry.
func (t TlTrack) Equal(o TlTrack) bool {
	return t.TLID == o.TLID && t.Track.Equal(o.Track)
}

// Playlist is a named, ordered list of tracks.
type Playlist struct {
	URI          URI     `json:"uri,omitempty"`
	Name         string  `json:"name,omitempty"`
	Tracks       []Track `json:"tracks,omitempty"`
	LastModified int64   `json:"last_modified,omitempty"`
}

// Length returns the number of tracks in the playlist.
func (p Playlist) Length() int {
	return len(p.Tracks)
}

// Equal reports whether p and o describe the same playlist.
func (p Playlist) Equal(o Playlist) bool {
	return p.URI == o.URI &&
		p.Name == o.Name &&
		p.LastModified == o.LastModified &&
		slices.EqualFunc(p.Tracks, o.Tracks, Track.Equal)
}

// Image is an artwork reference.
type Image struct {
	URI    URI `json:"uri,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Equal reports whether i and o describe the same image.
func (i Image) Equal(o Image) bool {
	return i == o
}

// Ref is a lightweight pointer to a library resource, used when browsing.
type Ref struct {
	URI  URI     `json:"uri,omitempty"`
	Name string  `json:"name,omitempty"`
	Type RefType `json:"type,omitempty"`
}

// Equal reports whether r and o point to the same resource.
func (r Ref) Equal(o Ref) bool {
	return r == o
}

// RefAlbum returns a Ref of type album.
func RefAlbum(uri URI, name string) Ref {
	return Ref{URI: uri, Name: name, Type: RefTypeAlbum}
}

// RefArtist returns a Ref of type artist.
func RefArtist(uri URI, name string) Ref {
	return Ref{URI: uri, Name: name, Type: RefTypeArtist}
}

// RefDirectory returns a Ref of type directory.
func RefDirectory(uri URI, name string) Ref {
	return Ref{URI: uri, Name: name, Type: RefTypeDirectory}
}

// RefPlaylist returns a Ref of type playlist.
func RefPlaylist(uri URI, name string) Ref {
	return Ref{URI: uri, Name: name, Type: RefTypePlaylist}
}

// RefTrack returns a Ref of type track.
func RefTrack(uri URI, name string) Ref {
	return Ref{URI: uri, Name: name, Type: RefTypeTrack}
}
