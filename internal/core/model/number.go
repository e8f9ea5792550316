package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a numeric token of the exposition format.
// "NaN", "+Inf" and "-Inf" are matched case-insensitively; any other token
// must be a decimal floating-point literal.
func ParseFloat(token string) (float64, error) {
	switch strings.ToLower(token) {
	case "nan":
		return math.NaN(), nil
	case "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}

	if !isDecimalLiteral(token) {
		return 0, ErrFormat.WithDetails("invalid number %q", token)
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrFormat.WithDetails("number %q out of range", token)
		}
		return 0, ErrFormat.WithDetails("invalid number %q", token)
	}
	return v, nil
}

// ParseCount parses a token holding an observation or bucket count.
// The value must be finite and non-negative; a fractional part is truncated.
func ParseCount(token string) (uint64, error) {
	v, err := ParseFloat(token)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= math.MaxUint64 {
		return 0, ErrFormat.WithDetails("invalid count %q", token)
	}
	return uint64(v), nil
}

// FormatFloat renders v the way renderers print sample values: "+Inf" and
// "-Inf" for infinities, fixed-point with six decimals otherwise.
func FormatFloat(v float64) string {
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-Inf"
		}
		return "+Inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// isDecimalLiteral rejects the hexadecimal, underscore and bare infinity
// forms strconv.ParseFloat would otherwise accept.
func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return digits
}
