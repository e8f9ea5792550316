package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newJSONLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("walk finished", "families", 3)

			entry := decodeEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "walk finished" {
				t.Errorf("msg = %v", entry["msg"])
			}
			if entry["families"] != float64(3) {
				t.Errorf("families = %v", entry["families"])
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("debug/info should be filtered at warn, got %q", buf.String())
	}
	if l.Enabled("info") {
		t.Error("Enabled(info) should be false at warn")
	}

	l.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("warn message should be logged")
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.With("format", "text").Info("walk started")

	if got := decodeEntry(t, buf)["format"]; got != "text" {
		t.Errorf("format = %v, want text", got)
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "error")

	l.Info("hidden")
	if buf.Len() > 0 {
		t.Error("info should be filtered at error level")
	}

	SetLevel("debug")
	l.Info("visible")
	if buf.Len() == 0 {
		t.Error("info should be logged after switching to debug")
	}
	if got := Level(); got != "debug" {
		t.Errorf("Level() = %q, want debug", got)
	}
}

func TestFixed_IgnoresSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Fixed(Config{Level: "warn", Format: "json", Output: &buf})

	SetLevel("debug")
	defer SetLevel("warn")

	l.Info("hidden")
	if buf.Len() > 0 {
		t.Errorf("fixed logger should stay at warn, got %q", buf.String())
	}
	l.Warn("visible")
	if buf.Len() == 0 {
		t.Error("warn message should be logged")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"debug", "debug", true},
		{"DEBUG", "debug", true},
		{"info", "info", true},
		{"warn", "warn", true},
		{"warning", "warn", true},
		{"ERROR", "error", true},
		{"verbose", "info", false},
		{"", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if got := strings.ToLower(level.String()); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if (err == nil) != tt.valid {
				t.Errorf("ParseLevel(%q) error = %v, valid %v", tt.input, err, tt.valid)
			}
			if got := ValidLevel(tt.input); got != tt.valid {
				t.Errorf("ValidLevel(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
	if cfg.Output == nil {
		t.Error("Output should not be nil")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("walk started", "format", "binary")

	out := buf.String()
	if !strings.Contains(out, "walk started") || !strings.Contains(out, "format=binary") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	if l.Enabled("error") {
		t.Error("Nop logger should not be enabled at any level")
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(Config{Level: "verbose"}); err == nil {
		t.Error("New() should reject an unknown level")
	}
	if _, err := New(Config{Level: "info", Format: "xml"}); err == nil {
		t.Error("New() should reject an unknown format")
	}
}

func TestFixed_Fallbacks(t *testing.T) {
	var buf bytes.Buffer
	l := Fixed(Config{Level: "verbose", Format: "xml", Output: &buf})

	l.Debug("hidden")
	l.Info("walk started")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("unknown level should fall back to info, got %q", out)
	}
	if !strings.Contains(out, "msg=\"walk started\"") {
		t.Errorf("unknown format should fall back to text, got %q", out)
	}
}

func TestSetDefault(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	prev := Default()
	SetDefault(l)
	defer SetDefault(prev)

	SetDefault(nil)
	Default().Debug("message")
	if buf.Len() == 0 {
		t.Error("Default() should return the logger passed to SetDefault")
	}
}

func TestLogger_WithContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithContext(context.Background()).Info("message")
	if buf.Len() == 0 {
		t.Error("expected log output")
	}
}
