// Package config holds configuration for the portal server and the
// CLI client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/matchably/pkg/matchably"
)

// PortalConfig holds configuration for the web portal server.
type PortalConfig struct {
	Addr       string // listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error
	LogFormat  string // log format: text, json
	DBPath     string // SQLite database path (":memory:" for testing)
	BackendURL string // Matchably API root
	AdminToken string // token for /admin API calls made by the admin UI
	Secure     bool   // set Secure on session cookies (behind TLS)
}

// DefaultPortalConfig returns sensible defaults.
func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		BackendURL: matchably.DefaultBaseURL,
	}
}

// PortalFromEnv builds a PortalConfig from environment variables,
// falling back to defaults. Call godotenv.Load first if a .env file
// should participate.
func PortalFromEnv() PortalConfig {
	cfg := DefaultPortalConfig()
	if v := os.Getenv("PORTAL_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("PORTAL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.AdminToken = v
	}
	if v := os.Getenv("PORTAL_SECURE"); v == "true" || v == "1" {
		cfg.Secure = true
	}
	return cfg
}

// DefaultDBPath returns the default portal database location
// (~/.matchably/portal.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".matchably", "portal.db"), nil
}

// ClientConfig is the optional YAML config for the CLI
// (~/.matchably/config.yaml).
type ClientConfig struct {
	BackendURL string        `yaml:"backend_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// LoadClientConfig reads the CLI config file. A missing file returns
// zero values without error; flags and defaults fill the gaps.
func LoadClientConfig() (ClientConfig, error) {
	var cfg ClientConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(filepath.Join(home, ".matchably", "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read client config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse client config: %w", err)
	}
	return cfg, nil
}

// GatewayConfig builds a matchably.Config from the client config,
// applying defaults for unset fields.
func (c ClientConfig) GatewayConfig() matchably.Config {
	cfg := matchably.DefaultConfig()
	if c.BackendURL != "" {
		cfg.BaseURL = c.BackendURL
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	if c.MaxRetries > 0 {
		cfg.MaxRetries = c.MaxRetries
	}
	return cfg
}
