package plan

import (
	"go/token"

	"cmpby-generator/internal/analyze"
)

var line = 0

// pos returns a distinct valid position for each call.
func pos() token.Position {
	line++
	return token.Position{Filename: "types.go", Line: line, Column: 1}
}

func marker(name string) analyze.Annotation {
	return analyze.Annotation{Name: name, Pos: pos()}
}

func attach(name, args string) analyze.Annotation {
	return analyze.Annotation{Name: name, Args: args, HasArgs: true, Pos: pos()}
}

func field(name string, anns ...analyze.Annotation) analyze.FieldInfo {
	return analyze.FieldInfo{Name: name, Exported: true, Annotations: anns, Pos: pos()}
}

func record(name string, anns []analyze.Annotation, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	for i := range fields {
		fields[i].Index = i
	}

	return &analyze.TypeInfo{
		ID:          analyze.TypeID{PkgPath: "example.com/shapes", Name: name},
		Kind:        analyze.TypeKindRecord,
		Fields:      fields,
		Annotations: anns,
		Pos:         pos(),
	}
}

func sealed(name string, anns ...analyze.Annotation) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		ID:          analyze.TypeID{PkgPath: "example.com/shapes", Name: name},
		Kind:        analyze.TypeKindVariant,
		Variant:     analyze.VariantSealed,
		Cases:       []analyze.CaseInfo{{Name: "Circle"}, {Name: "Square"}},
		Annotations: anns,
		Pos:         pos(),
	}
}

func anns(list ...analyze.Annotation) []analyze.Annotation { return list }
