// Package watch re-runs generation when the Go sources of watched package
// directories change. Bursts of events are collapsed into one run.
package watch
