package walk

import (
	"fmt"
	"mime"
	"strings"
)

// Format identifies a wire format.
type Format int

const (
	FormatText Format = iota
	FormatBinary
)

const (
	// TextContentType is the media type of the text exposition format.
	TextContentType = "text/plain; version=0.0.4"
	// BinaryContentType is the media type of the delimited protobuf format.
	BinaryContentType = "application/vnd.google.protobuf; proto=io.prometheus.client.MetricFamily; encoding=delimited"

	binaryMediaType = "application/vnd.google.protobuf"
	binaryProto     = "io.prometheus.client.MetricFamily"
)

// String returns "text" or "binary".
func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text"
}

// ContentType returns the media type advertised for the format.
func (f Format) ContentType() string {
	if f == FormatBinary {
		return BinaryContentType
	}
	return TextContentType
}

// DetectFormat maps a Content-Type header value onto a format. Only the
// delimited MetricFamily protobuf media type selects FormatBinary; anything
// else, including an empty or unparsable value, is treated as text.
func DetectFormat(contentType string) Format {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != binaryMediaType {
		return FormatText
	}
	if params["proto"] == binaryProto && params["encoding"] == "delimited" {
		return FormatBinary
	}
	return FormatText
}

// ParseFormat parses a format name as used in configuration files and
// command-line flags.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "plain":
		return FormatText, nil
	case "binary", "protobuf", "proto":
		return FormatBinary, nil
	}
	return FormatText, fmt.Errorf("unknown format %q", s)
}
