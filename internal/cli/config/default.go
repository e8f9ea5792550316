package config

import (
	"time"

	"github.com/yndnr/promwalk/internal/core/protoformat"
	"github.com/yndnr/promwalk/internal/core/textformat"
	"github.com/yndnr/promwalk/internal/scrape"
)

// Default configuration values.
const (
	DefaultOutput        = "simple"
	DefaultFormat        = "auto"
	DefaultTimeout       = scrape.DefaultTimeout
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultWatchInterval = time.Second
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:  DefaultOutput,
		Format:  DefaultFormat,
		Timeout: DefaultTimeout,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Watch: WatchSection{
			Interval: DefaultWatchInterval,
		},
		Limits: LimitsSection{
			MaxLineSize:    textformat.DefaultMaxLineSize,
			MaxMessageSize: protoformat.DefaultMaxMessageSize,
		},
	}
}

// Defaults returns the default configuration as dotted keys, the form the
// loader merges sources in.
func Defaults() map[string]any {
	d := Default()
	return map[string]any{
		"output":                  d.Output,
		"format":                  d.Format,
		"timeout":                 d.Timeout,
		"log.level":               d.Log.Level,
		"log.format":              d.Log.Format,
		"watch.interval":          d.Watch.Interval,
		"limits.max_line_size":    d.Limits.MaxLineSize,
		"limits.max_message_size": d.Limits.MaxMessageSize,
	}
}
