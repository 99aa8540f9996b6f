package config

import "time"

// Config holds the runtime settings of the hospital client CLI.
type Config struct {
	// BaseURL is the scheme://host[:port] prefix of the backend API.
	BaseURL string
	// RequestTimeout bounds one whole request, dial included.
	RequestTimeout time.Duration
	// CredentialsDB is the path of the local SQLite file holding the
	// remember-me state and the durable session id.
	CredentialsDB string
	// UseEncryption turns on the encrypted body envelope for POST
	// requests.
	UseEncryption bool
	// Verbose switches the console logger to debug level.
	Verbose bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.CredentialsDB = "hospital.db"
	c.UseEncryption = true
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
