// Package testsupport provides shared helpers for package tests:
// configs seeded with per-test temp directories, stores backed by
// throwaway databases, and fixture season files.
package testsupport

import (
	"path/filepath"
	"testing"

	"scorebook/internal/config"
)

// ConfigOption allows callers to customize the generated test
// configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.EventDir = filepath.Join(base, "events")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Ingest.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkers overrides the ingest worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.Workers = n
	}
}

// WithFailFast enables fail-fast ingest on the test config.
func WithFailFast() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.FailFast = true
	}
}
