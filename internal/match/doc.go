// Package match ranks known names against a misspelled one.
//
// It backs the "did you mean" hints of the diagnostics: unknown annotation
// names close to a configured marker, and selector segments close to an
// existing field or method.
//
// Key functions:
//   - Fold: reduces identifiers to a case and separator insensitive form
//   - Distance: computes the edit distance between names
//   - RankCandidates: ranks known names by similarity
//   - Suggest: returns the names worth offering as alternatives
package match
