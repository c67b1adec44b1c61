package analyze

import (
	"go/token"
	"go/types"

	"cmpby-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "cmpby-generator/music"
	Name    string // e.g., "Note"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the structural kind of a declared type.
type TypeKind int

//go:generate go tool stringer -type=TypeKind -trimprefix=TypeKind -output=kind_string.go

const (
	TypeKindUnsupported TypeKind = iota // anything that cannot carry comparison logic
	TypeKindRecord                      // struct with named or positional fields
	TypeKindVariant                     // sealed interface or enum
)

// VariantStyle tells how the cases of a variant type are declared.
type VariantStyle int

const (
	// VariantSealed is an interface implemented by the named types of its package.
	VariantSealed VariantStyle = iota
	// VariantEnum is a named basic type with package-level constants.
	VariantEnum
)

// String returns a human-readable representation of the VariantStyle.
func (s VariantStyle) String() string {
	switch s {
	case VariantSealed:
		return "sealed interface"
	case VariantEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// Annotation is one "@Name" or "@Name(args)" line of a doc comment.
type Annotation struct {
	Name    string         // annotation name without "@"
	Args    string         // text between the parentheses
	HasArgs bool           // parentheses were present
	Pos     token.Position // position of the "@"
	// Unterminated is set when the parentheses never balanced.
	Unterminated bool
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name        string         // Go field name
	Index       int            // field index in the struct
	Exported    bool           // whether the field is exported
	Embedded    bool           // whether the field is embedded (anonymous)
	Annotations []Annotation   // annotations from the doc and line comments
	Pos         token.Position // position of the field name
	GoType      types.Type     // field type
}

// Markers returns the field annotations named name.
func (f *FieldInfo) Markers(name string) []Annotation {
	return filterAnnotations(f.Annotations, name)
}

// CaseInfo describes one case of a variant type.
type CaseInfo struct {
	Name string
	Pos  token.Position
	// PointerOnly is set for sealed cases whose value type does not
	// implement the interface.
	PointerOnly bool
}

// TypeInfo is the structural description of a declared type.
type TypeInfo struct {
	ID   TypeID
	Kind TypeKind
	// Shape describes the underlying type, used in shape diagnostics.
	Shape string
	// Positional records address their members by index. The loader never
	// sets it; Go struct fields always have names.
	Positional bool
	// Variant is meaningful for TypeKindVariant only.
	Variant VariantStyle
	// Fields of a record, in declaration order.
	Fields []FieldInfo
	// Cases of a variant, in declaration order.
	Cases []CaseInfo
	// Annotations attached to the type declaration, in source order.
	Annotations []Annotation
	// Pos is the position of the type name.
	Pos token.Position
	// GoType is the declared named type. It is nil for hand-built descriptions.
	GoType types.Type
}

// AnnotationsNamed returns the type-level annotations named name.
func (t *TypeInfo) AnnotationsNamed(name string) []Annotation {
	return filterAnnotations(t.Annotations, name)
}

// HasFieldMarker reports whether any field carries the marker name.
func (t *TypeInfo) HasFieldMarker(name string) bool {
	for i := range t.Fields {
		if len(t.Fields[i].Markers(name)) > 0 {
			return true
		}
	}

	return false
}

// Uses reports whether the type is annotated with name at type or field level.
func (t *TypeInfo) Uses(name string) bool {
	return len(t.AnnotationsNamed(name)) > 0 || t.HasFieldMarker(name)
}

func filterAnnotations(list []Annotation, name string) []Annotation {
	var out []Annotation

	for _, a := range list {
		if a.Name == name {
			out = append(out, a)
		}
	}

	return out
}

// TypeGraph holds all described types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Order lists package paths in load order.
	Order []string
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// AddPackage registers pkg and its types.
func (g *TypeGraph) AddPackage(pkg *PackageInfo) {
	if _, ok := g.Packages[pkg.Path]; !ok {
		g.Order = append(g.Order, pkg.Path)
	}

	g.Packages[pkg.Path] = pkg
	for _, t := range pkg.Types {
		g.Types[t.ID] = t
	}
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string      // Import path
	Name  string      // Package name
	Dir   string      // Directory holding the package sources
	Types []*TypeInfo // Named types in declaration order
	// Problems are non-fatal load errors, typically type errors caused by
	// references to not yet generated methods.
	Problems []string
}
