package config

import "os"

// Config holds the configuration for the application.
type Config struct {
	CatalogPath string
	ListenAddr  string
	Env         string
}

const (
	defaultCatalogPath = "meals.json"
	defaultListenAddr  = ":8080"
)

// NewFromEnv creates a new Config object from environment variables.
// Every setting has a default; a missing catalog file is handled at load
// time, not here.
func NewFromEnv() *Config {
	cfg := &Config{
		CatalogPath: os.Getenv("CATALOG_PATH"),
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		Env:         os.Getenv("APP_ENV"),
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = defaultCatalogPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	return cfg
}

// IsProduction reports whether the app runs with the production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
