package scrape

import (
	"context"
	"net"
)

// unixDialer connects every request to the socket at path, ignoring the
// host of the request URL.
func unixDialer(path string) func(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	return func(ctx context.Context, _, _ string) (net.Conn, error) {
		return d.DialContext(ctx, "unix", path)
	}
}
