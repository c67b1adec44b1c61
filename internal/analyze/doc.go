// Package analyze loads Go packages and describes their named types.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build the
// model the planner works on: records (structs), variants (sealed interfaces
// and enums) and everything else, together with the "@Name(...)" annotations
// found in doc and line comments.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind, fields or cases, type-level annotations
//   - FieldInfo: field name, index, markers
//   - Classifier: resolves selectors to comparison and hash strategies
package analyze
