package config

import "strings"

// Sanitize returns a copy of the config with the bearer token masked.
// Use it when logging the effective configuration.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg
	if sanitized.BearerToken != "" {
		sanitized.BearerToken = maskSecret(sanitized.BearerToken)
	}
	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
