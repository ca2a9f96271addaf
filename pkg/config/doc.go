// Package config loads typed configuration structs from environment
// variables, with optional .env bootstrap for local development.
//
// Structs declare their settings with `env` tags from
// github.com/caarlos0/env; defaults live in `envDefault` so a bare
// environment yields a working configuration:
//
//	type Config struct {
//	    Threshold     int           `env:"LOGIN_GUARD_THRESHOLD" envDefault:"5"`
//	    AttemptWindow time.Duration `env:"LOGIN_GUARD_ATTEMPT_WINDOW" envDefault:"300s"`
//	}
//
// Load caches per type: the first call parses the environment, every later
// call for the same type returns the cached copy. MustLoad panics on failure
// for configuration the process cannot run without.
package config
