package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/infra/buildinfo"
	"github.com/yndnr/promwalk/internal/infra/tlsroots"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// DefaultTimeout bounds a scrape when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Accept header values, preferring the binary format in auto mode.
const (
	acceptAuto   = walk.BinaryContentType + ";q=0.7," + walk.TextContentType + ";q=0.3,*/*;q=0.1"
	acceptText   = walk.TextContentType + ",*/*;q=0.1"
	acceptBinary = walk.BinaryContentType
)

// Options configures a Client.
type Options struct {
	// Timeout bounds the whole request including reading the body.
	Timeout time.Duration
	// BearerToken is sent as an Authorization header when set.
	BearerToken string
	// Format is "auto", "text" or "binary". A fixed format is requested
	// from servers and overrides the Content-Type of responses and the
	// extension of files.
	Format string
	// UnixSocket routes HTTP requests through a unix domain socket.
	UnixSocket string
	// TLS configures HTTPS targets.
	TLS tlsroots.ClientOptions
	// Logger receives request diagnostics.
	Logger logger.Logger
}

// Client retrieves metrics from HTTP(S) endpoints, files and stdin.
type Client struct {
	http   *http.Client
	token  string
	forced *walk.Format
	accept string
	logger logger.Logger
	stdin  io.Reader
}

// NewClient creates a client from opts.
func NewClient(opts Options) (*Client, error) {
	c := &Client{
		token:  opts.BearerToken,
		accept: acceptAuto,
		logger: opts.Logger,
		stdin:  stdinReader,
	}
	if c.logger == nil {
		c.logger = logger.Default()
	}

	if opts.Format != "" && !strings.EqualFold(opts.Format, "auto") {
		f, err := walk.ParseFormat(opts.Format)
		if err != nil {
			return nil, err
		}
		c.forced = &f
		c.accept = acceptText
		if f == walk.FormatBinary {
			c.accept = acceptBinary
		}
	}

	tlsCfg, err := tlsroots.ClientConfig(opts.TLS)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	if opts.UnixSocket != "" {
		transport.DialContext = unixDialer(opts.UnixSocket)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.http = &http.Client{Transport: transport, Timeout: timeout}
	return c, nil
}

// Get retrieves target, which is an http(s) URL, a file:// URL, a path,
// or "-" for stdin. The caller closes the response.
func (c *Client) Get(ctx context.Context, target string) (*Response, error) {
	if isHTTP(target) {
		return c.Fetch(ctx, target)
	}
	return c.Open(target)
}

// Fetch performs an HTTP GET on target. Non-2xx statuses are errors.
func (c *Client) Fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", c.accept)
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", logger.RedactURL(target), err)
	}

	c.logger.Debug("scrape response",
		"target", target,
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &StatusError{
			Target:     logger.RedactURL(target),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	return &Response{
		Body:        resp.Body,
		Format:      c.format(walk.DetectFormat(contentType)),
		ContentType: contentType,
		Target:      target,
	}, nil
}

func (c *Client) format(detected walk.Format) walk.Format {
	if c.forced != nil {
		return *c.forced
	}
	return detected
}

// StatusError reports a non-2xx scrape response.
type StatusError struct {
	Target     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("scrape %s: unexpected status %d %s", e.Target, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func isHTTP(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}
