// Package config assembles runtime settings for the admin console from
// defaults, an optional JSON file and command-line flags, in that order of
// precedence.
package config

import "time"

// Config holds runtime settings for the admin console.
//
// Fields:
//   - ServerBaseURL: root URL of the authentication service.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenDBPath: path of the local SQLite database holding the token pair.
//   - OnlineCheckInterval: how often the console probes server reachability.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	TokenDBPath         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.TokenDBPath = "session.db"
	c.OnlineCheckInterval = 15 * time.Second
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
