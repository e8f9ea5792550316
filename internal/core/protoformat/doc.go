// Package protoformat decodes the Prometheus binary exposition format, a
// stream of varint length-delimited io.prometheus.client.MetricFamily
// messages, and converts each message into a model family.
package protoformat
