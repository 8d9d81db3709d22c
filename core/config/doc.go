// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env library
// for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/soundcore/core/config"
//
//	type ListenerConfig struct {
//		MailboxCapacity int           `env:"LISTENER_MAILBOX_CAPACITY" envDefault:"0"`
//		StopTimeout     time.Duration `env:"LISTENER_STOP_TIMEOUT" envDefault:"5s"`
//	}
//
//	func main() {
//		var cfg ListenerConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 ListenerConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 ListenerConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently. Reset clears the cache in tests.
package config
