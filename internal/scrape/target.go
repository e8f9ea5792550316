package scrape

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/promwalk/internal/core/walk"
)

// Stdin is the target name that reads from standard input.
const Stdin = "-"

var stdinReader io.Reader = os.Stdin

// Response is an open metrics payload together with its wire format.
type Response struct {
	// Body is the payload. The caller closes it.
	Body io.ReadCloser
	// Format is the wire format used to parse Body.
	Format walk.Format
	// ContentType is the Content-Type header for HTTP targets.
	ContentType string
	// Target is the target as given by the caller.
	Target string
}

// Close closes the body.
func (r *Response) Close() error {
	return r.Body.Close()
}

// Open opens a local target: a file:// URL, a path, or "-" for stdin. The
// format comes from the client's fixed format or else from the file
// extension: ".pb" and ".bin" select the binary format.
func (c *Client) Open(target string) (*Response, error) {
	if target == Stdin {
		return &Response{
			Body:   io.NopCloser(c.stdin),
			Format: c.format(walk.FormatText),
			Target: target,
		}, nil
	}

	path, err := localPath(target)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Response{
		Body:   f,
		Format: c.format(FormatForPath(path)),
		Target: target,
	}, nil
}

// FormatForPath guesses the wire format of a metrics file.
func FormatForPath(path string) walk.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pb", ".bin":
		return walk.FormatBinary
	}
	return walk.FormatText
}

func localPath(target string) (string, error) {
	if !strings.HasPrefix(target, "file:") {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse target %q: %w", target, err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file target %q must not name a remote host", target)
	}
	return u.Path, nil
}
