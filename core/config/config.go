package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse is returned when environment variables cannot be parsed into the target.
var ErrParse = errors.New("failed to parse config from environment")

// ErrNilTarget is returned when Load is called with a nil pointer.
var ErrNilTarget = errors.New("config target is nil")

var (
	loadEnvOnce sync.Once
	cache       sync.Map // reflect.Type -> cached value
	loadMu      sync.Mutex
)

// Load populates cfg from the environment. The .env file, if present, is read once
// before the first parse. Each type is parsed once; later calls copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilTarget
	}

	loadEnvOnce.Do(func() {
		// Missing .env is fine: real environments set variables directly.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()
	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	cache.Store(typ, parsed)
	*cfg = parsed
	return nil
}

// MustLoad is like Load but panics on failure. Use it during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached config so the next Load reads the environment again.
// Intended for tests.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
