package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/infra/shutdown"
	"github.com/yndnr/promwalk/internal/render"
	"github.com/yndnr/promwalk/internal/scrape"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// ScrapeCommand returns the scrape command.
func ScrapeCommand() *cli.Command {
	return &cli.Command{
		Name:      "scrape",
		Usage:     "Walk the metrics of one or more targets once",
		ArgsUsage: "TARGET... (http(s) URL, file, file:// URL or - for stdin)",
		Action:    scrapeAction,
	}
}

func scrapeAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("scrape: at least one target is required", 1)
	}
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	client, err := scrape.NewClient(e.cfg.ScrapeOptions(e.logger))
	if err != nil {
		return err
	}

	var aborted error
	for _, target := range c.Args().Slice() {
		res, err := e.walkTarget(ctx, client, target)
		if err != nil {
			return err
		}
		if res.Aborted() && aborted == nil {
			aborted = res.Err
		}
	}
	return e.strict(aborted)
}

// walkTarget fetches target and renders one walk over it.
func (e *env) walkTarget(ctx context.Context, client *scrape.Client, target string) (walk.Result, error) {
	ctx = logger.WithTarget(logger.WithLogger(ctx, e.logger), target)
	l := logger.L(ctx)

	resp, err := client.Get(ctx, target)
	if err != nil {
		return walk.Result{}, fmt.Errorf("scrape %s: %w", logger.RedactURL(target), err)
	}
	defer resp.Close()

	r, err := e.renderer(endpointURL(target))
	if err != nil {
		return walk.Result{}, err
	}
	cb := walk.Tee(r, e.metrics.Recorder(resp.Format))

	res := walk.Walk(ctx, resp.Body, resp.Format, cb, e.cfg.WalkOptions(e.logger)...)
	if err := r.Err(); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	e.report(l, res, resp.Format.String())
	return res, nil
}

func (e *env) renderer(url string) (render.Renderer, error) {
	format, err := render.ParseFormat(e.cfg.Output)
	if err != nil {
		return nil, err
	}
	return render.New(format, e.out, render.Options{URL: url})
}

// report logs the outcome of a walk.
// Interrupted walks are not reported.
func (e *env) report(l logger.Logger, res walk.Result, format string) {
	if !res.Aborted() || errors.Is(res.Err, context.Canceled) {
		return
	}
	l.Warn("walk ended early",
		"walk_id", res.WalkID,
		"format", format,
		"families", res.Families,
		"metrics", res.Metrics,
		"error", res.Err,
		"error_code", model.ErrorCode(res.Err))
}

// strict turns an aborted walk into a failure when configured to.
func (e *env) strict(aborted error) error {
	if aborted == nil || !e.cfg.Strict {
		return nil
	}
	return cli.Exit(fmt.Sprintf("walk ended early: %v", aborted), ExitAborted)
}
