// Package diagnostic provides structured errors and warnings reported while
// generating comparison and hashing code.
//
// Every diagnostic carries the source position of the most specific syntax
// it relates to (the annotation, the field, or the type declaration), so it
// can be printed the way the Go toolchain prints compile errors:
//
//	music/note.go:12:1: error: [empty-selection] no selector to operate on
//
// Errors abort generation for one type only. Warnings never abort.
package diagnostic
