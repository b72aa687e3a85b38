package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvFile            = "ALPHA_ENV_FILE"
	EnvAPIBaseURL      = "ALPHA_API_BASE_URL"
	EnvDBPath          = "ALPHA_DB_PATH"
	EnvLogLevel        = "ALPHA_LOG_LEVEL"
	EnvStorePassphrase = "ALPHA_STORE_PASSPHRASE"
)

// parseEnv overlays cfg with ALPHA_* variables. Variables set to an empty
// string are ignored.
func parseEnv(cfg *Config) error {
	if file := os.Getenv(EnvFile); file != "" {
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	for name, dst := range map[string]*string{
		EnvAPIBaseURL:      &cfg.APIBaseURL,
		EnvDBPath:          &cfg.DatabasePath,
		EnvLogLevel:        &cfg.LogLevel,
		EnvStorePassphrase: &cfg.StorePassphrase,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	return nil
}
