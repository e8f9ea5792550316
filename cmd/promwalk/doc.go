// Command promwalk walks Prometheus metrics in the text or binary
// exposition format and renders them as simple text, JSON, YAML, XML, a
// table, log records or normalized exposition text.
//
// Usage:
//
//	promwalk [global flags] scrape TARGET...
//	promwalk [global flags] watch FILE
//	promwalk [global flags] self [TARGET...]
//	promwalk [global flags] config show|validate
//	promwalk version
package main
