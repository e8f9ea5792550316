package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/infra/shutdown"
	"github.com/yndnr/promwalk/internal/scrape"
)

// SelfCommand returns the self command.
func SelfCommand() *cli.Command {
	return &cli.Command{
		Name:      "self",
		Usage:     "Walk promwalk's own metrics, after scraping the given targets",
		ArgsUsage: "[TARGET...]",
		Action:    selfAction,
	}
}

func selfAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	var aborted error
	if c.NArg() > 0 {
		client, err := scrape.NewClient(e.cfg.ScrapeOptions(e.logger))
		if err != nil {
			return err
		}
		for _, target := range c.Args().Slice() {
			res, err := e.walkTarget(ctx, client, target)
			if err != nil {
				return err
			}
			if res.Aborted() && aborted == nil {
				aborted = res.Err
			}
		}
	}

	r, err := e.renderer("")
	if err != nil {
		return err
	}
	res := walk.WalkSource(ctx, e.metrics.Gather(), r, e.cfg.WalkOptions(e.logger)...)
	if err := r.Err(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	e.report(e.logger, res, "self")
	if aborted == nil {
		aborted = res.Err
	}
	return e.strict(aborted)
}
