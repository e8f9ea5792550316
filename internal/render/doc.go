// Package render turns walk events into output.
//
//   - render.go: Format names, the New factory and label formatting
//   - simple.go: One line per family and per metric
//   - json.go, yaml.go, xml.go: Structured documents, one per family
//   - table.go: Aligned columns via text/tabwriter
//   - log.go: One log record per family and per metric
//   - exposition.go: Normalized Prometheus text exposition
//   - collector.go: Keeps families in memory
//
// Renderers write while the walk runs and remember the first write error;
// check Err after the walk has finished.
package render
