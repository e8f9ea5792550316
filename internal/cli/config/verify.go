package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/render"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if _, err := render.ParseFormat(cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if cfg.Format != "auto" {
		if _, err := walk.ParseFormat(cfg.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if err := verifyTLS(cfg); err != nil {
		return err
	}
	if !logger.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: must be text or json, got %q", cfg.Log.Format)
	}
	if cfg.Watch.Interval <= 0 {
		return errors.New("watch.interval must be positive")
	}
	if cfg.Limits.MaxLineSize <= 0 || cfg.Limits.MaxMessageSize <= 0 {
		return errors.New("limits must be positive")
	}
	return nil
}

func verifyTLS(cfg *Config) error {
	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return errors.New("cert_file and key_file must be set together")
	}
	for key, path := range map[string]string{
		"ca_file":   cfg.CAFile,
		"cert_file": cfg.CertFile,
		"key_file":  cfg.KeyFile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
