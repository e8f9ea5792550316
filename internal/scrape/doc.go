// Package scrape retrieves metrics payloads for walking.
//
//   - client.go: HTTP(S) scraping with content negotiation and bearer auth
//   - socket.go: Dialing HTTP targets over a unix domain socket
//   - target.go: Files, file:// URLs and stdin
//
// Responses carry the detected wire format; the caller closes them.
package scrape
