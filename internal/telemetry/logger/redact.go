package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// Key fragments that mark an attribute as a credential.
var sensitiveKeyPatterns = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"authorization",
	"credential",
	"cookie",
	"bearer",
}

// Authorization schemes whose parameter is masked wherever it appears.
var sensitiveSchemes = []string{
	"Bearer ",
	"Basic ",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks credential-bearing attributes before they reach
// the handler.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s == "" {
			return a
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if masked := RedactString(s); masked != s {
			return slog.String(a.Key, masked)
		}

	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// RedactString masks authorization header values and URL passwords in s.
// Other strings are returned unchanged.
func RedactString(s string) string {
	for _, scheme := range sensitiveSchemes {
		if len(s) > len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return s[:len(scheme)] + "***"
		}
	}
	if strings.Contains(s, "://") && strings.Contains(s, "@") {
		return RedactURL(s)
	}
	return s
}

// RedactURL replaces the password of a URL's userinfo with "xxxxx".
// Strings that do not parse as URLs are returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// IsSensitiveKey reports whether a key name suggests a credential.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}
