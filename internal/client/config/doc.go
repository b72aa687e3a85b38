// Package config loads runtime configuration for the alpha CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with --config / -c. The format follows the
//     extension: .yaml/.yml is YAML, anything else JSON.
//  3. Environment. If ALPHA_ENV_FILE names a dotenv file it is loaded first
//     (without overriding variables already set).
//  4. Command-line flags that were set explicitly.
//
// # File schema
//
// Durations are strings such as "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/api/v1",
//	  "db_path": "~/.alpha/alpha.db",
//	  "request_timeout": "30s",
//	  "retry_max": 2,
//	  "online_check_interval": "5s",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// # Environment
//
//	ALPHA_API_BASE_URL, ALPHA_DB_PATH, ALPHA_LOG_LEVEL, ALPHA_STORE_PASSPHRASE
//
// The store passphrase is read only from the environment or the file, never
// from a flag, so that it does not end up in shell history.
package config
