package textformat

import (
	"strconv"
	"strings"

	"github.com/yndnr/promwalk/internal/core/model"
)

// lineKind classifies one line of exposition text.
type lineKind int

const (
	kindIgnored lineKind = iota // blank line or free-form comment
	kindHelp
	kindType
	kindSample
	kindInvalid
)

// line is one lexed input line. Sample values are kept as raw tokens and
// only converted when the sample is merged into a family, so a bad value
// never prevents the family before it from being delivered.
type line struct {
	kind   lineKind
	no     int
	name   string
	help   string
	typ    model.MetricType
	labels model.Labels
	value  string
	err    error
	from   lineKind // kind an invalid line would have had, once its name is known
}

func lexLine(text string, no int) *line {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &line{kind: kindIgnored, no: no}
	}
	if trimmed[0] == '#' {
		return lexComment(trimmed[1:], no)
	}
	return lexSample(trimmed, no)
}

func invalid(no int, format string, args ...any) *line {
	return &line{kind: kindInvalid, no: no, err: model.ErrFormat.WithDetails(format, args...).AtLine(no)}
}

// invalidFor is invalid for a line whose kind and metric name were lexed
// before the error was found.
func invalidFor(from lineKind, name string, no int, format string, args ...any) *line {
	ln := invalid(no, format, args...)
	ln.from = from
	ln.name = name
	return ln
}

// lexComment handles "# HELP name text" and "# TYPE name type". Any other
// comment is ignored.
func lexComment(rest string, no int) *line {
	rest = strings.TrimLeft(rest, " \t")
	keyword, rest := cutSpace(rest)
	if keyword != "HELP" && keyword != "TYPE" {
		return &line{kind: kindIgnored, no: no}
	}

	name, rest := cutSpace(rest)
	if name == "" {
		return invalid(no, "%s without metric name", keyword)
	}
	if !isMetricName(name) {
		return invalid(no, "invalid metric name %q", name)
	}

	if keyword == "HELP" {
		return &line{kind: kindHelp, no: no, name: name, help: unescapeHelp(rest)}
	}

	typeName := strings.TrimSpace(rest)
	typ, ok := model.ParseMetricType(typeName)
	if !ok {
		return invalidFor(kindType, name, no, "unknown metric type %q for %s", typeName, name)
	}
	return &line{kind: kindType, no: no, name: name, typ: typ}
}

// lexSample handles `name{label="value",...} value [timestamp]`.
func lexSample(s string, no int) *line {
	i := 0
	for i < len(s) && isNameChar(s[i], i == 0) {
		i++
	}
	if i == 0 || (i < len(s) && !strings.ContainsRune(" \t{", rune(s[i]))) {
		return invalid(no, "invalid metric name in %q", s)
	}
	ln := &line{kind: kindSample, no: no, name: s[:i]}

	s = strings.TrimLeft(s[i:], " \t")
	if strings.HasPrefix(s, "{") {
		labels, rest, err := lexLabels(s[1:])
		if err != "" {
			return invalidFor(kindSample, ln.name, no, "%s", err)
		}
		var lerr error
		ln.labels, lerr = model.NewLabels(labels...)
		if lerr != nil {
			return &line{kind: kindInvalid, no: no, name: ln.name, from: kindSample, err: model.ErrFormat.Wrap(lerr).AtLine(no)}
		}
		s = strings.TrimLeft(rest, " \t")
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return invalidFor(kindSample, ln.name, no, "missing value for %s", ln.name)
	case 1:
	case 2:
		if _, err := strconv.ParseInt(fields[1], 10, 64); err != nil {
			return invalidFor(kindSample, ln.name, no, "invalid timestamp %q", fields[1])
		}
	default:
		return invalidFor(kindSample, ln.name, no, "unexpected trailing data %q", strings.Join(fields[2:], " "))
	}
	ln.value = fields[0]
	return ln
}

// lexLabels parses the inside of a label block up to and including the
// closing brace. It returns the remaining input after the brace.
func lexLabels(s string) ([]model.Label, string, string) {
	var labels []model.Label
	for {
		s = strings.TrimLeft(s, " \t")
		if strings.HasPrefix(s, "}") {
			return labels, s[1:], ""
		}

		i := 0
		for i < len(s) && isLabelChar(s[i], i == 0) {
			i++
		}
		if i == 0 {
			return nil, "", "invalid label name"
		}
		name := s[:i]

		s = strings.TrimLeft(s[i:], " \t")
		if !strings.HasPrefix(s, "=") {
			return nil, "", "expected '=' after label " + name
		}
		s = strings.TrimLeft(s[1:], " \t")
		if !strings.HasPrefix(s, `"`) {
			return nil, "", "expected quoted value for label " + name
		}

		value, rest, ok := unquoteLabelValue(s[1:])
		if !ok {
			return nil, "", "invalid value for label " + name
		}
		labels = append(labels, model.Label{Name: name, Value: value})

		s = strings.TrimLeft(rest, " \t")
		switch {
		case strings.HasPrefix(s, ","):
			s = s[1:]
		case strings.HasPrefix(s, "}"):
		default:
			return nil, "", "expected ',' or '}' after label " + name
		}
	}
}

// unquoteLabelValue reads up to the closing quote, resolving \\, \" and \n.
func unquoteLabelValue(s string) (string, string, bool) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			return sb.String(), s[i+1:], true
		case '\\':
			if i+1 >= len(s) {
				return "", "", false
			}
			i++
			switch s[i] {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			default:
				return "", "", false
			}
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", false
}

// unescapeHelp resolves \\ and \n; other backslashes are kept.
func unescapeHelp(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				sb.WriteByte('\\')
				i++
				continue
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// cutSpace splits s at the first run of blanks.
func cutSpace(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

func isMetricName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i], i == 0) {
			return false
		}
	}
	return s != ""
}

func isNameChar(c byte, first bool) bool {
	return c == ':' || isLabelChar(c, first)
}

func isLabelChar(c byte, first bool) bool {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
		return true
	}
	return !first && c >= '0' && c <= '9'
}
