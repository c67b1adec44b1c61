package selector

import (
	"slices"
	"strconv"
	"strings"

	"cmpby-generator/internal/common"
)

// FieldsMarker is the reserved item standing for the marked fields of a
// record inside a type-level ordering list.
const FieldsMarker = "_fields"

// Segment is one step of a selector: a member access or, when Call is set,
// a zero-argument method call.
type Segment struct {
	Name       string // member or method name
	Index      int    // member position, valid when Positional is set
	Positional bool   // member of a positional record
	Call       bool   // trailing "()"
}

// String returns the segment as written in an annotation.
func (s Segment) String() string {
	name := s.Name
	if s.Positional {
		name = strconv.Itoa(s.Index)
	}

	if s.Call {
		return name + "()"
	}

	return name
}

// Selector is an access path rooted at the instance.
type Selector struct {
	Segments []Segment
	// Quoted is set for selectors written as string literals.
	// A quoted selector is never the fields marker.
	Quoted bool
}

// Field returns the single-segment selector of a named member.
func Field(name string) Selector {
	return Selector{Segments: []Segment{{Name: name}}}
}

// Position returns the single-segment selector of a positional member.
func Position(index int) Selector {
	return Selector{Segments: []Segment{{Index: index, Positional: true}}}
}

// Head returns the first segment, or the zero Segment for an empty selector.
func (s Selector) Head() Segment {
	if len(s.Segments) == 0 {
		return Segment{}
	}

	return s.Segments[0]
}

// IsMarker reports whether s is the unquoted fields marker.
func (s Selector) IsMarker() bool {
	seg, ok := common.Only(s.Segments)
	if s.Quoted || !ok {
		return false
	}

	return !seg.Positional && !seg.Call && seg.Name == FieldsMarker
}

// Equal reports whether both selectors have the same syntactic shape.
func (s Selector) Equal(other Selector) bool {
	return s.Quoted == other.Quoted && slices.Equal(s.Segments, other.Segments)
}

// String returns the selector as a dotted path, e.g. "Inner.Len()".
func (s Selector) String() string {
	parts := make([]string, len(s.Segments))
	for i, seg := range s.Segments {
		parts[i] = seg.String()
	}

	return strings.Join(parts, ".")
}

// Sequence is an ordered list of selectors. For ordering the first selector
// has the highest priority.
type Sequence []Selector

// Equal reports whether both sequences hold equal selectors in the same order.
func (q Sequence) Equal(other Sequence) bool {
	return slices.EqualFunc(q, other, Selector.Equal)
}

// String returns the sequence as a comma separated list.
func (q Sequence) String() string {
	parts := make([]string, len(q))
	for i, s := range q {
		parts[i] = s.String()
	}

	return strings.Join(parts, ", ")
}
