// Package shutdown ties long-running commands to process signals.
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(context.Context) error { return watcher.Close() })
//	go h.Wait(ctx)
package shutdown
