// Package command provides the promwalk CLI, built on urfave/cli/v2:
//
//   - root.go: App, global flags, configuration and logger setup
//   - scrape.go: Walk targets once
//   - watch.go: Walk a file on every change
//   - self.go: Walk promwalk's own metrics
//   - config.go: Show and validate configuration
//   - version.go: Build information
//
// Walk output goes to the app writer, diagnostics to stderr.
package command
