// Package logger provides structured logging on top of log/slog.
//
//   - logger.go: Logger interface, handler setup and the process default
//   - context.go: Context propagation of the logger, walk ID and target
//   - redact.go: Masking of bearer tokens, passwords and URL credentials
//
// Output goes to stderr so it never interleaves with rendered walk output.
package logger
