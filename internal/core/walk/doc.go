// Package walk drives a format parser over an input stream and reports
// each family and metric to a callback set.
//
//   - walk.go: The engine (Walk, WalkSource) and its options
//   - callbacks.go: The Callbacks contract, Aborter, Nop and Tee
//   - source.go: Family sources over the text and binary parsers
//   - format.go: Wire formats and content-type detection
//
// A walk is single-threaded and pull-based: the engine asks the parser for
// one family at a time and hands it to the callbacks before reading on.
// Errors from the input never reach the per-family callbacks. They end the
// walk, are logged at debug level and are reported through Result and the
// optional Aborter.
package walk
