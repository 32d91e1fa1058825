package api

import "time"

// Defaults for Config.
const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr              string        // Listen address (default ":8080")
	ReadHeaderTimeout time.Duration // Header read timeout
	RequestTimeout    time.Duration // Per-request deadline passed to the pipeline
	ShutdownTimeout   time.Duration // Grace period for in-flight requests
}

// WithDefaults returns a copy of Config with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return cfg
}
