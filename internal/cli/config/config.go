package config

import (
	"time"

	"github.com/yndnr/promwalk/internal/infra/confloader"
)

// Config is the configuration of promwalk. Every key can be set in the
// YAML config file, as a PROMWALK_ environment variable or as a flag.
type Config struct {
	// Output is the renderer: simple, json, yaml, xml, table, log or
	// exposition.
	Output string `koanf:"output"`
	// Format is the wire format to request and parse: auto, text or binary.
	Format string `koanf:"format"`
	// Timeout bounds one scrape.
	Timeout time.Duration `koanf:"timeout"`
	// BearerToken is sent to HTTP targets.
	BearerToken string `koanf:"bearer_token"`
	// CAFile, CertFile, KeyFile, ServerName and Insecure configure HTTPS.
	CAFile     string `koanf:"ca_file"`
	CertFile   string `koanf:"cert_file"`
	KeyFile    string `koanf:"key_file"`
	ServerName string `koanf:"server_name"`
	Insecure   bool   `koanf:"insecure"`
	// UnixSocket routes HTTP requests through a unix domain socket.
	UnixSocket string `koanf:"unix_socket"`
	// Strict makes an aborted walk a failure of the command.
	Strict bool `koanf:"strict"`

	Log    LogSection    `koanf:"log"`
	Watch  WatchSection  `koanf:"watch"`
	Limits LimitsSection `koanf:"limits"`

	// origins maps dotted keys to the source that set them.
	origins map[string]string
}

// LogSection configures diagnostics on stderr.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// WatchSection configures the watch command.
type WatchSection struct {
	// Interval is the minimum time between two walks.
	Interval time.Duration `koanf:"interval"`
	// Listen is an address serving the tool's own metrics while watching.
	Listen string `koanf:"listen"`
}

// LimitsSection bounds the input.
type LimitsSection struct {
	MaxLineSize    int   `koanf:"max_line_size"`
	MaxMessageSize int64 `koanf:"max_message_size"`
}

// Origin names the source of a dotted key such as "log.level": "default",
// "file", "env" or "flag".
func (c *Config) Origin(key string) string {
	if src, ok := c.origins[key]; ok {
		return src
	}
	return confloader.SourceDefault
}
