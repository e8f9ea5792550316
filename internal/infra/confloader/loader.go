package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "PROMWALK_"

// Source names reported by Origin, lowest priority first.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Loader merges configuration layers into a struct tagged with koanf tags.
type Loader struct {
	envPrefix string
	filePath  string
	defaults  map[string]any

	k       *koanf.Koanf
	origins map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file layer. An empty path means no file.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithDefaults sets the values used for keys no other source provides.
// Keys are dotted paths, e.g. "log.level".
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// NewLoader creates a configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		envPrefix: DefaultEnvPrefix,
		k:         koanf.New("."),
		origins:   map[string]string{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type layer struct {
	source   string
	provider koanf.Provider
	parser   koanf.Parser
}

// layers lists the sources in merge order; later layers win.
func (l *Loader) layers(flags map[string]any) []layer {
	var ls []layer
	if len(l.defaults) > 0 {
		ls = append(ls, layer{SourceDefault, mapProvider(l.defaults), nil})
	}
	if l.filePath != "" {
		ls = append(ls, layer{SourceFile, file.Provider(l.filePath), yaml.Parser()})
	}
	ls = append(ls, layer{SourceEnv, env.Provider(l.envPrefix, ".", l.envKey), nil})
	if len(flags) > 0 {
		ls = append(ls, layer{SourceFlag, mapProvider(flags), nil})
	}
	return ls
}

// Load merges defaults, the configuration file, environment variables and
// flags (explicitly set command-line values, may be nil) in that order and
// unmarshals the result into target.
func (l *Loader) Load(target any, flags map[string]any) error {
	k := koanf.New(".")
	origins := make(map[string]string)
	for _, ly := range l.layers(flags) {
		part := koanf.New(".")
		if err := part.Load(ly.provider, ly.parser); err != nil {
			return fmt.Errorf("load %s: %w", ly.source, err)
		}
		for _, key := range part.Keys() {
			origins[key] = ly.source
		}
		if err := k.Merge(part); err != nil {
			return fmt.Errorf("merge %s: %w", ly.source, err)
		}
	}

	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	l.k, l.origins = k, origins
	return nil
}

// envKey maps PROMWALK_LOG__LEVEL to "log.level" and PROMWALK_BEARER_TOKEN
// to "bearer_token": a double underscore separates sections.
func (l *Loader) envKey(s string) string {
	s = strings.TrimPrefix(s, l.envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Origin returns the source that set key in the last Load, or "" when no
// source did.
func (l *Loader) Origin(key string) string {
	return l.origins[key]
}

// Origins returns a copy of the key to source mapping of the last Load.
func (l *Loader) Origins() map[string]string {
	out := make(map[string]string, len(l.origins))
	for k, v := range l.origins {
		out[k] = v
	}
	return out
}

// String returns the merged value of key as a string.
func (l *Loader) String(key string) string {
	return l.k.String(key)
}
