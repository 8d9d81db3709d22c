// Package models defines the immutable value types carried as event payloads:
// artists, albums, tracks, tracklist entries, playlists, images and browse refs.
//
// Models are plain values. Once built they are never mutated, and slices they hold
// are shared read-only between every recipient of an event. Use Equal to compare.
//
// Each model encodes to JSON with a "__model__" field naming its type and omits
// zero-valued fields:
//
//	data, _ := json.Marshal(models.Artist{URI: "local:artist:1", Name: "Nina"})
//	// {"__model__":"Artist","uri":"local:artist:1","name":"Nina"}
package models
