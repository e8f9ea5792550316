// Package buildinfo describes the running binary. Values can be injected
// at build time:
//
//	go build -ldflags "-X github.com/yndnr/promwalk/internal/infra/buildinfo.Version=v1.0.0"
//
// and otherwise come from the module and VCS information the Go toolchain
// embeds.
package buildinfo
