package player

import (
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/tracing"
)

type Config struct {
	Listener listener.Config
	Log      logger.Config
	Tracing  tracing.Config

	AppName string `env:"APP_NAME" envDefault:"soundcore"`
}
