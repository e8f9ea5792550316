package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/infra/confloader"
	"github.com/yndnr/promwalk/internal/infra/tlsroots"
	"github.com/yndnr/promwalk/internal/scrape"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// DefaultConfigPath returns the config file used when none is given,
// e.g. ~/.config/promwalk/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "promwalk", "config.yaml")
}

// Load merges defaults, the config file, PROMWALK_ environment variables
// and flags, then verifies the result. An empty path falls back to
// DefaultConfigPath, which may be missing; an explicit path must exist.
func Load(path string, flags map[string]any) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(Defaults()),
	)
	cfg := &Config{}
	if err := loader.Load(cfg, flags); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	cfg.origins = loader.Origins()
	return cfg, nil
}

// ScrapeOptions returns the client options for cfg.
func (c *Config) ScrapeOptions(l logger.Logger) scrape.Options {
	return scrape.Options{
		Timeout:     c.Timeout,
		BearerToken: c.BearerToken,
		Format:      c.Format,
		UnixSocket:  c.UnixSocket,
		TLS: tlsroots.ClientOptions{
			CAFile:             c.CAFile,
			CertFile:           c.CertFile,
			KeyFile:            c.KeyFile,
			ServerName:         c.ServerName,
			InsecureSkipVerify: c.Insecure,
		},
		Logger: l,
	}
}

// WalkOptions returns the walk options for cfg.
func (c *Config) WalkOptions(l logger.Logger) []walk.Option {
	return []walk.Option{
		walk.WithLogger(l),
		walk.WithMaxLineSize(c.Limits.MaxLineSize),
		walk.WithMaxMessageSize(c.Limits.MaxMessageSize),
	}
}

// LoggerConfig returns the logger configuration for cfg. Records go to
// stderr.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: os.Stderr,
	}
}
