// Package audiotest provides a fake audio engine that emits audio events
// without touching any real pipeline.
package audiotest

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/soundcore/core/audio"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/models"
)

// ErrChangeNotPrepared is returned by SetURI when PrepareChange was not called first.
var ErrChangeNotPrepared = errors.New("prepare change not called before set uri")

// DummyAudio is a stateful stand-in for the audio engine.
// It is safe for concurrent use. Operations that emit events are serialized, so
// events leave in the same order as the state changes that caused them.
type DummyAudio struct {
	emitter *audio.Emitter
	logger  *slog.Logger

	emitMu sync.Mutex

	mu            sync.Mutex
	state         models.PlaybackState
	volume        models.Percentage
	position      models.DurationMs
	uri           models.URI
	streamChanged bool
	liveStream    bool
	tags          map[string][]string
	badURIs       map[models.URI]struct{}
	sourceSetup   func()
	aboutToFinish func()
	sendErr       error
}

// Option configures a DummyAudio.
type Option func(*DummyAudio)

// WithLogger sets the logger that reports failed sends. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *DummyAudio) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a stopped DummyAudio that emits events through sender.
func New(sender listener.Sender, opts ...Option) *DummyAudio {
	d := &DummyAudio{
		emitter: audio.NewEmitter(sender),
		logger:  logger.Discard(),
		state:   models.PlaybackStopped,
		tags:    make(map[string][]string),
		badURIs: make(map[models.URI]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Err returns every error reported by the sender so far, joined.
// Send only fails for programming errors, so a non-nil Err means the wiring is broken.
func (d *DummyAudio) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendErr
}

func (d *DummyAudio) emit(ctx context.Context, event string, err error) {
	if err == nil {
		return
	}
	d.logger.ErrorContext(ctx, "sending audio event failed",
		logger.Event(event),
		logger.Error(err))

	d.mu.Lock()
	d.sendErr = errors.Join(d.sendErr, err)
	d.mu.Unlock()
}

// State returns the current playback state.
func (d *DummyAudio) State() models.PlaybackState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// URI returns the current stream URI, empty when none is set.
func (d *DummyAudio) URI() models.URI {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uri
}

// LiveStream reports whether the current URI was set as a live stream.
func (d *DummyAudio) LiveStream() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.liveStream
}

// SetURI sets the stream to play. PrepareChange must be called first.
func (d *DummyAudio) SetURI(uri models.URI, liveStream bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.uri != "" {
		return ErrChangeNotPrepared
	}
	d.position = 0
	d.uri = uri
	d.streamChanged = true
	d.liveStream = liveStream
	d.tags = make(map[string][]string)
	return nil
}

// Position returns the current position.
func (d *DummyAudio) Position() models.DurationMs {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

// SetPosition seeks and emits position_changed.
func (d *DummyAudio) SetPosition(ctx context.Context, position models.DurationMs) bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	d.position = position
	d.mu.Unlock()

	d.emit(ctx, audio.EventPositionChanged, d.emitter.PositionChanged(ctx, position))
	return true
}

// StartPlayback moves to playing. Returns false without a URI or for a failing URI.
func (d *DummyAudio) StartPlayback(ctx context.Context) bool {
	return d.changeState(ctx, models.PlaybackPlaying)
}

// PausePlayback moves to paused. Returns false without a URI or for a failing URI.
func (d *DummyAudio) PausePlayback(ctx context.Context) bool {
	return d.changeState(ctx, models.PlaybackPaused)
}

// StopPlayback moves to stopped and clears the URI.
func (d *DummyAudio) StopPlayback(ctx context.Context) bool {
	return d.changeState(ctx, models.PlaybackStopped)
}

// PrepareChange clears the URI and source setup callback so a new URI can be set.
func (d *DummyAudio) PrepareChange() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prepareChangeLocked()
	return true
}

func (d *DummyAudio) prepareChangeLocked() {
	d.uri = ""
	d.sourceSetup = nil
}

// Volume returns the current volume.
func (d *DummyAudio) Volume() models.Percentage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volume
}

// SetVolume sets the volume.
func (d *DummyAudio) SetVolume(volume models.Percentage) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = volume
	return true
}

// CurrentTags returns a copy of the current stream tags.
func (d *DummyAudio) CurrentTags() map[string][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.tags)
}

// SetSourceSetupCallback sets the function run by SourceSetupCallback.
func (d *DummyAudio) SetSourceSetupCallback(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sourceSetup = fn
}

// SetAboutToFinishCallback sets the function run by AboutToFinishCallback.
func (d *DummyAudio) SetAboutToFinishCallback(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.aboutToFinish = fn
}

// TriggerFakePlaybackFailure makes later state changes report failure while uri is set.
func (d *DummyAudio) TriggerFakePlaybackFailure(uri models.URI) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.badURIs[uri] = struct{}{}
}

// TriggerFakeTagsChanged merges tags into the current tags and emits tags_changed
// with every current tag name.
func (d *DummyAudio) TriggerFakeTagsChanged(ctx context.Context, tags map[string][]string) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	maps.Copy(d.tags, tags)
	names := slices.Sorted(maps.Keys(d.tags))
	d.mu.Unlock()

	d.emit(ctx, audio.EventTagsChanged, d.emitter.TagsChanged(ctx, names))
}

// SourceSetupCallback returns a function that runs the source setup callback, if any.
// The returned function must be called without holding any DummyAudio lock.
func (d *DummyAudio) SourceSetupCallback() func() {
	return func() {
		d.mu.Lock()
		fn := d.sourceSetup
		d.mu.Unlock()

		if fn != nil {
			fn()
		}
	}
}

// AboutToFinishCallback returns a function simulating the engine nearing the end of
// the stream. With a callback installed it prepares a change and runs the callback,
// which may set the next URI. If a next URI is set it emits position_changed(0) and
// stream_changed; otherwise the tags are cleared and reached_end_of_stream is emitted.
func (d *DummyAudio) AboutToFinishCallback(ctx context.Context) func() {
	return func() {
		d.mu.Lock()
		fn := d.aboutToFinish
		if fn != nil {
			d.prepareChangeLocked()
		}
		d.mu.Unlock()

		if fn != nil {
			fn()
		}

		d.emitMu.Lock()
		defer d.emitMu.Unlock()

		d.mu.Lock()
		uri := d.uri
		if uri == "" || fn == nil {
			d.tags = make(map[string][]string)
			d.mu.Unlock()
			d.emit(ctx, audio.EventReachedEndOfStream, d.emitter.ReachedEndOfStream(ctx))
			return
		}
		d.mu.Unlock()

		d.emit(ctx, audio.EventPositionChanged, d.emitter.PositionChanged(ctx, 0))
		d.emit(ctx, audio.EventStreamChanged, d.emitter.StreamChanged(ctx, uri))
	}
}

func (d *DummyAudio) changeState(ctx context.Context, newState models.PlaybackState) bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()

	if d.uri == "" {
		d.mu.Unlock()
		return false
	}

	var events []func()

	if newState == models.PlaybackStopped {
		d.streamChanged = true
		d.uri = ""
	}

	if d.streamChanged {
		d.streamChanged = false
		uri := d.uri
		events = append(events, func() {
			d.emit(ctx, audio.EventStreamChanged, d.emitter.StreamChanged(ctx, uri))
		})
	}

	if d.uri != "" {
		events = append(events, func() {
			d.emit(ctx, audio.EventPositionChanged, d.emitter.PositionChanged(ctx, 0))
		})
	}

	oldState := d.state
	d.state = newState
	events = append(events, func() {
		d.emit(ctx, audio.EventStateChanged, d.emitter.StateChanged(ctx, oldState, newState, ""))
	})

	if newState == models.PlaybackPlaying {
		d.tags["audio-codec"] = []string{"fake info..."}
		events = append(events, func() {
			d.emit(ctx, audio.EventTagsChanged, d.emitter.TagsChanged(ctx, []string{"audio-codec"}))
		})
	}

	_, bad := d.badURIs[d.uri]
	d.mu.Unlock()

	for _, emit := range events {
		emit()
	}

	return !bad
}
