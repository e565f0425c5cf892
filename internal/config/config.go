// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped with this package's sentinel errors.
package config

// Default values used by New.
const (
	DefaultAddr            = ":8501"
	DefaultModelPath       = "model/best_pipeline.json"
	DefaultCacheSize       = 1024
	DefaultShutdownTimeout = 30
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile optionally mirrors logs into a rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// ModelPath points at the serialized pipeline artifact (.json, .yaml, .yml).
	ModelPath string `koanf:"model_path"`

	// CacheSize bounds the prediction result cache. Zero disables caching.
	CacheSize int `koanf:"cache_size"`

	// ShutdownTimeoutSec bounds graceful HTTP shutdown.
	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               DefaultAddr,
		ModelPath:          DefaultModelPath,
		CacheSize:          DefaultCacheSize,
		ShutdownTimeoutSec: DefaultShutdownTimeout,
	}
}
