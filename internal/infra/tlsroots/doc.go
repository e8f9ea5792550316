// Package tlsroots builds the TLS configuration used to scrape HTTPS
// targets: system roots plus an optional CA bundle, an optional client
// certificate, and an explicit opt-out of verification.
package tlsroots
