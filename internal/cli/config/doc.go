// Package config defines the promwalk configuration.
//
//   - config.go: Config struct
//   - default.go: Default values
//   - loader.go: Loading and merging, mapping onto client and walk options
//   - verify.go: Validation
//   - sanitize.go: Masking secrets for logs
//
// Sources are merged in this order, later ones winning: defaults, the
// YAML config file, PROMWALK_ environment variables, command-line flags.
package config
