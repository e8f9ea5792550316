package command

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/promwalk/internal/cli/config"
	"github.com/yndnr/promwalk/internal/infra/confloader"
	"github.com/yndnr/promwalk/internal/infra/shutdown"
	"github.com/yndnr/promwalk/internal/scrape"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

const (
	shutdownTimeout = 5 * time.Second
	// watchDebounce folds the events of one rewrite into a single walk.
	watchDebounce = 100 * time.Millisecond
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Walk a metrics file again every time it changes, until interrupted",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Minimum time between two walks",
			},
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Serve promwalk's own metrics on this address while watching",
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("watch: exactly one FILE is required", 1)
	}
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	target, err := filepath.Abs(c.Args().First())
	if err != nil {
		return err
	}

	interval := e.cfg.Watch.Interval
	if c.IsSet("interval") {
		interval = c.Duration("interval")
	}
	listen := e.cfg.Watch.Listen
	if c.IsSet("listen") {
		listen = c.String("listen")
	}

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()
	handler := shutdown.NewHandler(shutdownTimeout)

	watcher, err := confloader.NewWatcher(
		confloader.WithWatcherLogger(e.logger),
		confloader.WithDebounce(watchDebounce),
	)
	if err != nil {
		return err
	}
	handler.OnShutdown(func(context.Context) error { return watcher.Close() })

	if err := watcher.Watch(target); err != nil {
		_ = handler.Shutdown()
		return err
	}
	configPath := c.String("config")
	if configPath != "" {
		if configPath, err = filepath.Abs(configPath); err == nil {
			err = watcher.Watch(configPath)
		}
		if err != nil {
			_ = handler.Shutdown()
			return err
		}
	}

	changes := make(chan string, 8)
	watcher.OnChange(func(path string) {
		select {
		case changes <- path:
		default:
		}
	})
	go watcher.Run(ctx)

	if listen != "" {
		srv := &http.Server{Addr: listen, Handler: e.metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				e.logger.Error("metrics listener failed", "addr", listen, "error", err)
			}
		}()
		handler.OnShutdown(srv.Shutdown)
		e.logger.Info("serving metrics", "addr", listen)
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	pending := true
	for {
		if pending {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
			pending = false
			if err := e.walkFile(ctx, target); err != nil {
				e.logger.Warn("walk failed", "file", target, "error", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
		case path := <-changes:
			if path == configPath {
				e.reload(c, configPath)
			} else {
				pending = true
			}
			continue
		}
		break
	}

	e.logger.Debug("watch stopped", "file", target)
	return handler.Shutdown()
}

// walkFile renders one walk of a metrics file. The client is built per
// walk so that a reloaded configuration takes effect.
func (e *env) walkFile(ctx context.Context, path string) error {
	client, err := scrape.NewClient(e.cfg.ScrapeOptions(e.logger))
	if err != nil {
		return err
	}
	_, err = e.walkTarget(ctx, client, path)
	return err
}

// reload re-reads the configuration file. An invalid file keeps the
// current configuration.
func (e *env) reload(c *cli.Context, path string) {
	overrides, err := flagOverrides(c)
	if err == nil {
		var cfg *config.Config
		if cfg, err = config.Load(path, overrides); err == nil {
			e.cfg = cfg
			logger.SetLevel(cfg.Log.Level)
			e.logger.Info("configuration reloaded", "file", path)
			return
		}
	}
	e.logger.Warn("configuration reload failed", "file", path, "error", err)
}
