package player

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/soundcore/core/audio"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/playback"
)

type (
	coreBase  = playback.BaseListener
	audioBase = audio.BaseListener
)

// EventLogger logs every core and audio event it receives at the configured level.
type EventLogger struct {
	coreBase
	audioBase

	logger *slog.Logger
	level  slog.Level
}

var (
	_ playback.Listener     = (*EventLogger)(nil)
	_ audio.Listener        = (*EventLogger)(nil)
	_ listener.EventHandler = (*EventLogger)(nil)
)

// NewEventLogger creates an EventLogger writing to l at info level.
func NewEventLogger(l *slog.Logger) *EventLogger {
	if l == nil {
		l = logger.Discard()
	}
	return &EventLogger{logger: l, level: slog.LevelInfo}
}

// WithLevel returns a copy logging at level.
func (e *EventLogger) WithLevel(level slog.Level) *EventLogger {
	cp := *e
	cp.level = level
	return &cp
}

// OnEvent implements listener.EventHandler.
func (e *EventLogger) OnEvent(ctx context.Context, ev listener.Event) error {
	e.logger.Log(ctx, e.level, "event received",
		logger.Event(ev.EventName()),
		logger.Capability(listener.CapabilityName(ctx)),
		logger.EventID(listener.EventID(ctx)),
		logger.Payload(ev.Args()))
	return nil
}
