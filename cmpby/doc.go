// Package cmpby holds the runtime helpers called by code generated with
// cmpby-generator.
//
// Generated Compare methods delegate to cmp.Compare for ordered values and
// to the helpers here for booleans and optional values. Optional values are
// pointers: nil sorts before any non-nil value, and two non-nil pointers
// compare by their targets.
package cmpby
