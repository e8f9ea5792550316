// Package model defines the format-agnostic metric data model.
//
// Both wire formats are normalized into these types:
//
//   - labels.go: Ordered, immutable label sets
//   - metric.go: The closed metric variant set (Counter, Gauge, Untyped,
//     Summary, Histogram)
//   - family.go: Metric families and their construction invariants
//   - number.go: Numeric token parsing and formatting
//   - errors.go: Coded errors shared by parsers, converter and walk engine
//
// All values are built once through constructor functions and are
// read-only afterwards.
package model
