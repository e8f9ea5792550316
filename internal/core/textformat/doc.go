// Package textformat parses the line-oriented Prometheus text exposition
// format (version 0.0.4) into model families.
//
// Parsing is incremental: each call to Parser.Parse reads just enough lines
// to complete one family. Summary and histogram families are assembled from
// their component samples (quantile or bucket lines plus the _sum and _count
// lines), grouped by the label set that remains once the structural
// "quantile" or "le" label is removed.
//
// A malformed line never invalidates the families returned before it. When
// its metric name shows it cannot continue the family in progress, that
// family is returned first and the error surfaces on the following call.
// Otherwise the family in progress is dropped and the call fails, so a
// family is never delivered with some of its samples missing.
package textformat
