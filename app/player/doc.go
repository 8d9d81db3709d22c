// Package player assembles the event subsystem of a music server: one registry,
// one dispatcher, and typed emitters for the core and audio capabilities.
//
// Basic usage:
//
//	app, err := player.NewApp(player.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	if _, err := app.Listen(player.NewEventLogger(log)); err != nil {
//		return err
//	}
//
//	go func() {
//		_ = app.Playback().VolumeChanged(ctx, 42)
//	}()
//
//	return app.Run(ctx) // blocks until ctx is cancelled
//
// Configuration is loaded from the environment (APP_NAME, LOG_LEVEL, LOG_FORMAT,
// LISTENER_MAILBOX_CAPACITY, LISTENER_STOP_TIMEOUT, TRACING_*) unless WithConfig is given.
// Tracing settings are only read here; build the provider with tracing.Setup and pass
// it through WithTracerProvider.
package player
