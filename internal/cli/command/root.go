package command

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/promwalk/internal/cli/config"
	"github.com/yndnr/promwalk/internal/infra/buildinfo"
	"github.com/yndnr/promwalk/internal/render"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
	"github.com/yndnr/promwalk/internal/telemetry/metric"
)

// ExitAborted is the exit code of a strict run whose walk ended early.
const ExitAborted = 2

const envKey = "env"

// env is the state shared by all commands, built in the Before hook.
type env struct {
	cfg     *config.Config
	logger  logger.Logger
	metrics *metric.Registry
	out     io.Writer
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "promwalk",
		Usage:   "Walk Prometheus metrics from endpoints, files and stdin",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ScrapeCommand(),
			WatchCommand(),
			SelfCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the global CLI flags. Defaults live in the config
// package; a flag only overrides them when given.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default: " + config.DefaultConfigPath() + ")",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output: " + formatList(),
		},
		&cli.BoolFlag{Name: "simple", Usage: "Same as --output simple"},
		&cli.BoolFlag{Name: "json", Usage: "Same as --output json"},
		&cli.BoolFlag{Name: "xml", Usage: "Same as --output xml"},
		&cli.BoolFlag{Name: "log", Usage: "Same as --output log"},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Wire format to request and parse: auto, text, binary",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Scrape timeout",
		},
		&cli.StringFlag{Name: "bearer-token", Usage: "Bearer token for HTTP targets"},
		&cli.StringFlag{Name: "ca-file", Usage: "CA certificate for HTTPS targets"},
		&cli.StringFlag{Name: "cert-file", Usage: "Client certificate for HTTPS targets"},
		&cli.StringFlag{Name: "key-file", Usage: "Client key for HTTPS targets"},
		&cli.StringFlag{Name: "server-name", Usage: "Server name to verify HTTPS targets against"},
		&cli.BoolFlag{Name: "insecure", Usage: "Skip HTTPS certificate verification"},
		&cli.StringFlag{Name: "unix-socket", Usage: "Send HTTP requests through this unix socket"},
		&cli.BoolFlag{Name: "strict", Usage: "Exit with status 2 when a walk ends early"},
		&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn, error"},
		&cli.StringFlag{Name: "log-format", Usage: "Log format: text, json"},
	}
}

// flagKeys maps flags onto configuration keys.
var flagKeys = map[string]string{
	"output":       "output",
	"format":       "format",
	"timeout":      "timeout",
	"bearer-token": "bearer_token",
	"ca-file":      "ca_file",
	"cert-file":    "cert_file",
	"key-file":     "key_file",
	"server-name":  "server_name",
	"insecure":     "insecure",
	"unix-socket":  "unix_socket",
	"strict":       "strict",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

var outputAliases = []string{"simple", "json", "xml", "log"}

// flagOverrides returns the configuration keys set on the command line.
func flagOverrides(c *cli.Context) (map[string]any, error) {
	overrides := make(map[string]any)
	for name, key := range flagKeys {
		if c.IsSet(name) {
			overrides[key] = c.Value(name)
		}
	}

	var aliases []string
	for _, name := range outputAliases {
		if c.Bool(name) {
			aliases = append(aliases, name)
		}
	}
	switch {
	case len(aliases) > 1 || (len(aliases) == 1 && c.IsSet("output")):
		return nil, errors.New("choose one output: --output, " + strings.Join(prefixAll(outputAliases, "--"), ", "))
	case len(aliases) == 1:
		overrides["output"] = aliases[0]
	}
	return overrides, nil
}

func setup(c *cli.Context) error {
	overrides, err := flagOverrides(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	l, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	logger.SetDefault(l)
	l.Debug("configuration loaded", "config", config.Sanitize(cfg))

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = &env{
		cfg:     cfg,
		logger:  l,
		metrics: metric.NewRegistry(metric.WithRuntimeMetrics()),
		out:     c.App.Writer,
	}
	return nil
}

// getEnv retrieves the state built by setup.
func getEnv(c *cli.Context) (*env, error) {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e, nil
	}
	return nil, errors.New("command run without setup")
}

func formatList() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func prefixAll(ss []string, prefix string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = prefix + s
	}
	return out
}

// endpointURL returns target with credentials removed when it is an HTTP
// URL, and "" otherwise.
func endpointURL(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	u.User = nil
	return u.String()
}
