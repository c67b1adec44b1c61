package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDoc parses a file declaring type T after comment and returns the
// annotations of its doc comment.
func parseDoc(t *testing.T, comment string) []Annotation {
	t.Helper()

	fset := token.NewFileSet()
	src := "package p\n\n" + comment + "\ntype T int\n"

	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	gd := f.Decls[0].(*ast.GenDecl)
	require.NotNil(t, gd.Doc)

	anns := ParseAnnotations(fset, gd.Doc)
	for i := range anns {
		anns[i].Pos = token.Position{}
	}

	return anns
}

func TestParseAnnotations(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []Annotation
	}{
		{
			name:    "marker",
			comment: "// @CmpBy",
			want:    []Annotation{{Name: "CmpBy"}},
		},
		{
			name:    "arguments",
			comment: "// T is a thing.\n//\n// @CmpBy(A, Product())",
			want:    []Annotation{{Name: "CmpBy", Args: "A, Product()", HasArgs: true}},
		},
		{
			name:    "empty arguments",
			comment: "// @HashBy()",
			want:    []Annotation{{Name: "HashBy", HasArgs: true}},
		},
		{
			name:    "several",
			comment: "// @CmpBy(A)\n// @HashBy(B)\n// @SortBy",
			want: []Annotation{
				{Name: "CmpBy", Args: "A", HasArgs: true},
				{Name: "HashBy", Args: "B", HasArgs: true},
				{Name: "SortBy"},
			},
		},
		{
			name:    "spanning lines",
			comment: "// @CmpBy(\n//     A,\n//     B,\n// )\n// @HashBy",
			want: []Annotation{
				{Name: "CmpBy", Args: "\nA,\nB,\n", HasArgs: true},
				{Name: "HashBy"},
			},
		},
		{
			name:    "parenthesis in quotes",
			comment: `// @CmpBy("a)b", C)`,
			want:    []Annotation{{Name: "CmpBy", Args: `"a)b", C`, HasArgs: true}},
		},
		{
			name:    "escaped quote",
			comment: `// @CmpBy("a\")", C)`,
			want:    []Annotation{{Name: "CmpBy", Args: `"a\")", C`, HasArgs: true}},
		},
		{
			name:    "nested calls",
			comment: "// @CmpBy(Inner().Len(), B)",
			want:    []Annotation{{Name: "CmpBy", Args: "Inner().Len(), B", HasArgs: true}},
		},
		{
			name:    "unterminated",
			comment: "// @CmpBy(A, B",
			want:    []Annotation{{Name: "CmpBy", Args: "A, B", HasArgs: true, Unterminated: true}},
		},
		{
			name:    "block comment",
			comment: "/*\n * T is a thing.\n * @HashBy(A)\n */",
			want:    []Annotation{{Name: "HashBy", Args: "A", HasArgs: true}},
		},
		{
			name:    "not at line start",
			comment: "// Sorted like @CmpBy(A).",
			want:    nil,
		},
		{
			name:    "no name",
			comment: "// @ 2x\n// @1x",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDoc(t, tt.comment))
		})
	}
}

func TestParseAnnotations_Position(t *testing.T) {
	fset := token.NewFileSet()
	src := "package p\n\ntype T struct {\n\t// @CmpBy\n\tA int\n\tB int // @HashBy\n}\n"

	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	st := f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec).Type.(*ast.StructType)

	a := ParseAnnotations(fset, st.Fields.List[0].Doc, st.Fields.List[0].Comment)
	require.Len(t, a, 1)
	assert.Equal(t, "p.go:4:5", a[0].Pos.String())

	b := ParseAnnotations(fset, st.Fields.List[1].Doc, st.Fields.List[1].Comment)
	require.Len(t, b, 1)
	assert.Equal(t, "HashBy", b[0].Name)
	assert.Equal(t, 6, b[0].Pos.Line)
	assert.Equal(t, 11, b[0].Pos.Column)
}

func TestParseAnnotations_NilGroups(t *testing.T) {
	assert.Empty(t, ParseAnnotations(token.NewFileSet(), nil, nil))
}
