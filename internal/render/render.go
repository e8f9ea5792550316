package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// Format names an output format.
type Format string

const (
	FormatSimple     Format = "simple"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatXML        Format = "xml"
	FormatTable      Format = "table"
	FormatLog        Format = "log"
	FormatExposition Format = "exposition"
)

// Formats lists the output formats New accepts.
func Formats() []Format {
	return []Format{FormatSimple, FormatJSON, FormatYAML, FormatXML, FormatTable, FormatLog, FormatExposition}
}

// ParseFormat parses an output format name case-insensitively. "text" is
// accepted for the exposition format.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	if name == "text" {
		return FormatExposition, nil
	}
	for _, f := range Formats() {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Renderer writes the events of a walk. Err returns the first error met
// while writing; rendering stops after it.
type Renderer interface {
	walk.Callbacks
	Err() error
}

// Options configures a renderer.
type Options struct {
	// URL is the endpoint the metrics came from. Simple and XML mention it.
	URL string
	// Logger receives the records of the log renderer. When nil, records
	// are written as text to the output writer.
	Logger logger.Logger
	// Level is the level of log renderer records, "info" by default.
	Level string
	// NoHeaders drops the table header row.
	NoHeaders bool
}

// New returns a renderer of the given format writing to w.
func New(format Format, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatSimple:
		return NewSimple(w, opts.URL), nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatYAML:
		return NewYAML(w), nil
	case FormatXML:
		return NewXML(w, opts.URL), nil
	case FormatTable:
		return NewTable(w, opts.NoHeaders), nil
	case FormatLog:
		l := opts.Logger
		if l == nil {
			l = logger.Fixed(logger.Config{Level: "debug", Format: "text", Output: w})
		}
		return NewLog(l, opts.Level), nil
	case FormatExposition:
		return NewExposition(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// FormatLabels renders labels as name=value pairs separated by commas and
// wrapped in prefix and suffix, e.g. FormatLabels(l, "{", "}") gives
// "{method=GET,code=200}". Empty labels give prefix+suffix.
func FormatLabels(labels model.Labels, prefix, suffix string) string {
	return prefix + labels.String() + suffix
}

// sink is a writer that remembers the first error and drops every write
// after it.
type sink struct {
	w   io.Writer
	err error
}

func (s *sink) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

func (s *sink) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, _ = fmt.Fprintf(s, format, args...)
}

func (s *sink) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *sink) Err() error {
	return s.err
}
