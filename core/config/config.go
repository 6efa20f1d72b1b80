package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	loadDotEnv = sync.OnceFunc(func() {
		// Missing .env files are fine; real environments set variables
		// directly.
		_ = godotenv.Load()
	})
)

// Load parses environment variables into cfg. Each concrete type is parsed
// once per process; later calls for the same type return the cached value,
// so every caller sees one consistent configuration.
func Load[T any](cfg *T) error {
	loadDotEnv()

	mu.Lock()
	defer mu.Unlock()

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse %s from environment: %w", key, err)
	}
	cache[key] = *cfg
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup
// where a missing required variable should halt the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
