// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the campusmarket CLI.
type Config struct {
	// ServerBaseURL is the backend API root, e.g. "http://localhost:5001/api".
	ServerBaseURL string
	// DatabaseDSN is the local sqlite database path.
	DatabaseDSN string
	// RequestTimeout is the transport-level timeout for every request.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5001/api"
	c.DatabaseDSN = "campusmarket.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
