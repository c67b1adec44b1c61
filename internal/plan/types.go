package plan

import (
	"fmt"
	"go/token"
	"slices"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/config"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/selector"
)

// Mode identifies one of the generators sharing the pipeline.
type Mode int

const (
	// ModeOrdering emits equality, partial and total ordering.
	ModeOrdering Mode = iota
	// ModeHashing emits hashing.
	ModeHashing
	// ModeCombined emits everything from a single annotation set.
	ModeCombined
)

// String returns a human-readable representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeOrdering:
		return "ordering"
	case ModeHashing:
		return "hashing"
	case ModeCombined:
		return "combined"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Policy configures the pipeline for one generator: which annotation it
// reads and which halves it produces.
type Policy struct {
	Mode   Mode
	Marker string
}

// Orders reports whether the policy produces the ordering half.
func (p Policy) Orders() bool { return p.Mode != ModeHashing }

// Hashes reports whether the policy produces the hashing half.
func (p Policy) Hashes() bool { return p.Mode != ModeOrdering }

// RecognizesMarker reports whether "_fields" is the interleave marker for
// this policy rather than an ordinary path.
func (p Policy) RecognizesMarker() bool { return p.Mode != ModeHashing }

// Policies returns the three generator policies for the given marker names.
func Policies(m config.Markers) []Policy {
	return []Policy{
		{Mode: ModeOrdering, Marker: m.Ordering},
		{Mode: ModeHashing, Marker: m.Hashing},
		{Mode: ModeCombined, Marker: m.Combined},
	}
}

// Entry is one item of a type-level list during resolution: either a
// SelectorEntry or the FieldsEntry marker.
type Entry interface {
	entry()
	Position() token.Position
}

// SelectorEntry is an ordinary selector.
type SelectorEntry struct {
	Selector selector.Selector
	Pos      token.Position
	// Field is set when the selector comes from a marked field.
	Field string
	// CaseOrder marks the entry standing for the declaration order of the
	// cases of a variant.
	CaseOrder bool
}

// FieldsEntry stands for the marked fields, in declaration order.
type FieldsEntry struct {
	Pos token.Position
}

func (SelectorEntry) entry() {}
func (FieldsEntry) entry()   {}

// Position returns where the entry was written.
func (e SelectorEntry) Position() token.Position { return e.Pos }

// Position returns where the entry was written.
func (e FieldsEntry) Position() token.Position { return e.Pos }

// Step is one link of a synthesized chain.
type Step struct {
	Selector selector.Selector
	Pos      token.Position
	Class    analyze.Class
	// CaseOrder steps rank the case held by a variant value.
	CaseOrder bool
}

// Result is the validated synthesis input for one type.
type Result struct {
	Type *analyze.TypeInfo
	// Ordering is the comparison chain; meaningful when EmitOrdering is set.
	Ordering     []Step
	EmitOrdering bool
	// Hashing is the hash chain; meaningful when EmitHashing is set.
	Hashing     []Step
	EmitHashing bool
}

// AsFunctions reports whether the emitter renders package functions instead
// of methods. Interfaces cannot declare method bodies.
func (r *Result) AsFunctions() bool {
	return r.Type.Kind == analyze.TypeKindVariant && r.Type.Variant == analyze.VariantSealed
}

// UsesCaseOrder reports whether an emitted chain ranks variant cases.
func (r *Result) UsesCaseOrder() bool {
	return (r.EmitOrdering && hasCaseOrder(r.Ordering)) || (r.EmitHashing && hasCaseOrder(r.Hashing))
}

func hasCaseOrder(steps []Step) bool {
	return slices.ContainsFunc(steps, func(s Step) bool { return s.CaseOrder })
}

// Selectors returns the selector sequence of a chain.
func Selectors(steps []Step) selector.Sequence {
	seq := make(selector.Sequence, len(steps))
	for i, s := range steps {
		seq[i] = s.Selector
	}

	return seq
}

// PackagePlan holds the results of one package in declaration order.
type PackagePlan struct {
	Package *analyze.PackageInfo
	Results []*Result
}

// Plan is the output of planning a whole type graph.
type Plan struct {
	Packages    []*PackagePlan
	Diagnostics diagnostic.Diagnostics
}
