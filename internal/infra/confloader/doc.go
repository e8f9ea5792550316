// Package confloader loads configuration with koanf and watches files
// with fsnotify.
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (PROMWALK_ prefix)
//  3. Configuration file (YAML)
//  4. Default values
//
// The Watcher is shared by configuration reloads and the watch command,
// which re-walks a metrics file whenever it is rewritten.
package confloader
