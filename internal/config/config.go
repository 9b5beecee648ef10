// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config with defaults; Load layers file and env on top.
// - Loader errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Simulated processing delays per pipeline, in milliseconds.
	AssetDelayMS   int `koanf:"asset_delay_ms"`
	CommandDelayMS int `koanf:"command_delay_ms"`
	ExampleDelayMS int `koanf:"example_delay_ms"`

	// SessionIdleTimeoutS evicts sessions untouched for this many seconds; 0 disables eviction.
	SessionIdleTimeoutS int `koanf:"session_idle_timeout_s"`

	// MaxSessions caps concurrently held sessions.
	MaxSessions int `koanf:"max_sessions"`

	// MaxTrackFrames caps GET /pose/track?n.
	MaxTrackFrames int `koanf:"max_track_frames"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		AssetDelayMS:        800,
		CommandDelayMS:      500,
		ExampleDelayMS:      300,
		SessionIdleTimeoutS: 900,
		MaxSessions:         1000,
		MaxTrackFrames:      600,
	}
}

// AssetDelay returns the asset pipeline delay.
func (c *Config) AssetDelay() time.Duration {
	return time.Duration(c.AssetDelayMS) * time.Millisecond
}

// CommandDelay returns the avatar command delay.
func (c *Config) CommandDelay() time.Duration {
	return time.Duration(c.CommandDelayMS) * time.Millisecond
}

// ExampleDelay returns the avatar quick-example delay.
func (c *Config) ExampleDelay() time.Duration {
	return time.Duration(c.ExampleDelayMS) * time.Millisecond
}

// SessionIdleTimeout returns the idle eviction timeout.
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleTimeoutS) * time.Second
}
