// Package gen renders planned types into Go source with
// github.com/dave/jennifer.
//
// Each package gets one file holding, per annotated type, either methods
// (records and enums) or package functions (sealed interfaces):
//   - Equal and Less, defined through Compare
//   - Compare, a chain of three-way comparisons returning at the first
//     difference
//   - Hash, writing every selected value into a maphash.Hash
//
// Values are compared with cmp.Compare, slices.Compare and the helpers of
// the cmpby runtime package, or with the Compare and Hash routines their
// types already provide.
package gen
