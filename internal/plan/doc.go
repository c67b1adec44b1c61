// Package plan turns annotated type descriptions into validated synthesis
// results consumed by code generation.
//
// Pipeline, per type:
//  1. Pick the generator policies whose annotation appears on the type
//  2. Validate: generator conflicts, type shape
//  3. Parse the type-level attachments and scan the marked fields
//  4. Resolve both lists into one sequence, honoring the _fields marker
//  5. Classify every selector for the emitter
//
// Any failure drops the whole type and is reported as a diagnostic; other
// types of the same package are unaffected.
package plan
