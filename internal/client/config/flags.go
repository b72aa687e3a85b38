package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig              = "config"
	FlagAPIURL              = "api-url"
	FlagDB                  = "db"
	FlagTimeout             = "timeout"
	FlagRetries             = "retries"
	FlagOnlineCheckInterval = "online-check-interval"
	FlagLogLevel            = "log-level"
	FlagLogFormat           = "log-format"
)

// RegisterFlags adds the configuration flags to fs. Defaults shown in help
// are the built-in ones; file and environment values still apply when a
// flag is not given.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagAPIURL, "a", d.APIBaseURL, "base URL of the Alpha API")
	fs.String(FlagDB, d.DatabasePath, "path to the local database")
	fs.Duration(FlagTimeout, d.RequestTimeout, "per-request timeout")
	fs.Int(FlagRetries, d.RetryMax, "retries for transient network failures")
	fs.DurationP(FlagOnlineCheckInterval, "i", d.OnlineCheckInterval, "online check interval of the shell")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, d.LogFormat, "log format (text, json)")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags copies only the flags that were set on the command line.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	set := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			err = apply()
		}
	}

	set(FlagAPIURL, func() (e error) { cfg.APIBaseURL, e = fs.GetString(FlagAPIURL); return })
	set(FlagDB, func() (e error) { cfg.DatabasePath, e = fs.GetString(FlagDB); return })
	set(FlagTimeout, func() (e error) { cfg.RequestTimeout, e = fs.GetDuration(FlagTimeout); return })
	set(FlagRetries, func() (e error) { cfg.RetryMax, e = fs.GetInt(FlagRetries); return })
	set(FlagOnlineCheckInterval, func() (e error) {
		cfg.OnlineCheckInterval, e = fs.GetDuration(FlagOnlineCheckInterval)
		return
	})
	set(FlagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagLogFormat, func() (e error) { cfg.LogFormat, e = fs.GetString(FlagLogFormat); return })
	return err
}
