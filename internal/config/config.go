// Package config resolves runtime settings: defaults, then a .env file in
// the working directory when present, then the process environment. Flags
// are layered on top by the command layer.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for stagetrack.
type Config struct {
	// DBPath overrides the database location. Empty means the default
	// XDG data directory.
	DBPath string
}

// LoadDefaults populates c with the defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = ""
}

// Load builds the effective config. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	if v := os.Getenv("STAGETRACK_DB"); v != "" {
		cfg.DBPath = v
	}
	return cfg
}
