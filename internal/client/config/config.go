package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the alpha CLI.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	RequestTimeout      time.Duration
	RetryMax            int
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string

	// StorePassphrase enables at-rest sealing of the stored tokens.
	StorePassphrase string
}

const (
	DefaultAPIBaseURL = "http://localhost:8080/api/v1"
	DefaultDBPath     = "alpha.db"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = DefaultDBPath
	c.RequestTimeout = 30 * time.Second
	c.RetryMax = 2
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.StorePassphrase = ""
}

// Load builds a Config from defaults, the config file, the environment and
// the flags registered with RegisterFlags on fs (fs may be nil). Later
// sources take precedence over earlier ones.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := configPath(fs); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot work with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: api base url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("config: retry max must not be negative, got %d", c.RetryMax)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("config: online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
