// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
// Create loggers with the factory function and options:
//
//	import "github.com/dmitrymomot/soundcore/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("soundcore"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("soundcore"))
//
//	// From environment (LOG_LEVEL, LOG_FORMAT)
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for missing values, so they can be passed
// without nil checks:
//
//	log.Debug("sending event",
//		logger.Event("volume_changed"),
//		logger.Capability("core"),
//		logger.Payload(map[string]any{"volume": 42}),
//		logger.Count("recipients", 2),
//	)
//
//	log.Error("triggering event failed",
//		logger.Error(err),
//		logger.Recipient(actorID),
//	)
//
// Payload sorts arguments by name so log lines are stable between runs.
package logger
