package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/yndnr/promwalk/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			e, err := getEnv(c)
			if err != nil {
				return err
			}
			info := buildinfo.Get()
			switch e.cfg.Output {
			case "json":
				enc := json.NewEncoder(e.out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "yaml":
				return yaml.NewEncoder(e.out).Encode(info)
			default:
				_, err := fmt.Fprintf(e.out, "promwalk %s\n  commit:     %s\n  built:      %s\n  go version: %s\n",
					info.Version, info.Commit, info.BuildTime, info.GoVersion)
				return err
			}
		},
	}
}
