package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/yndnr/promwalk/internal/cli/config"
	"github.com/yndnr/promwalk/internal/infra/confloader"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration and where each value came from",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "FILE",
				Action:    configValidate,
			},
		},
	}
}

// shownConfig is the YAML form of the configuration.
type shownConfig struct {
	Output      string `yaml:"output"`
	Format      string `yaml:"format"`
	Timeout     string `yaml:"timeout"`
	BearerToken string `yaml:"bearer_token,omitempty"`
	CAFile      string `yaml:"ca_file,omitempty"`
	CertFile    string `yaml:"cert_file,omitempty"`
	KeyFile     string `yaml:"key_file,omitempty"`
	ServerName  string `yaml:"server_name,omitempty"`
	Insecure    bool   `yaml:"insecure"`
	UnixSocket  string `yaml:"unix_socket,omitempty"`
	Strict      bool   `yaml:"strict"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Watch struct {
		Interval string `yaml:"interval"`
		Listen   string `yaml:"listen,omitempty"`
	} `yaml:"watch"`
	Limits struct {
		MaxLineSize    int   `yaml:"max_line_size"`
		MaxMessageSize int64 `yaml:"max_message_size"`
	} `yaml:"limits"`
}

func toShown(cfg *config.Config) shownConfig {
	s := shownConfig{
		Output:      cfg.Output,
		Format:      cfg.Format,
		Timeout:     cfg.Timeout.String(),
		BearerToken: cfg.BearerToken,
		CAFile:      cfg.CAFile,
		CertFile:    cfg.CertFile,
		KeyFile:     cfg.KeyFile,
		ServerName:  cfg.ServerName,
		Insecure:    cfg.Insecure,
		UnixSocket:  cfg.UnixSocket,
		Strict:      cfg.Strict,
	}
	s.Log.Level = cfg.Log.Level
	s.Log.Format = cfg.Log.Format
	s.Watch.Interval = cfg.Watch.Interval.String()
	s.Watch.Listen = cfg.Watch.Listen
	s.Limits.MaxLineSize = cfg.Limits.MaxLineSize
	s.Limits.MaxMessageSize = cfg.Limits.MaxMessageSize
	return s
}

func configShow(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	cfg := config.Sanitize(e.cfg)
	var doc yaml.Node
	if err := doc.Encode(toShown(cfg)); err != nil {
		return err
	}
	annotate(&doc, "", cfg)

	enc := yaml.NewEncoder(e.out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// annotate marks every value that did not come from the defaults with the
// source that set it.
func annotate(n *yaml.Node, prefix string, cfg *config.Config) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		path := prefix + key.Value
		if val.Kind == yaml.MappingNode {
			annotate(val, path+".", cfg)
			continue
		}
		if src := cfg.Origin(path); src != confloader.SourceDefault {
			val.LineComment = "from " + src
		}
	}
}

func configValidate(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("config validate: exactly one FILE is required", 1)
	}
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	path := c.Args().First()
	if _, err := config.Load(path, nil); err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
	}
	_, err = fmt.Fprintf(e.out, "%s: OK\n", path)
	return err
}
