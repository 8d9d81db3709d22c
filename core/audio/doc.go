// Package audio defines the "audio" listener capability: low-level events from
// the audio engine about streams, positions, pipeline state and tags.
//
// The playback core is the usual listener. Package audiotest provides a fake
// engine that emits these events for tests.
package audio
