// Package metric instruments walks with Prometheus metrics.
//
//   - prometheus.go: Registry of walk metrics, HTTP handler, and Gather
//     to walk the registry itself
//   - recorder.go: Recorder, a walk callback set feeding the registry
//
// Metrics are prefixed with "promwalk_".
package metric
