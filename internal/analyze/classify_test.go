package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmpby-generator/internal/config"
	"cmpby-generator/internal/selector"
)

const classifySource = `package shapes

import "hash/maphash"

type Point struct{ X, Y int }

func (p Point) Compare(o Point) int      { return p.X - o.X }
func (p Point) Hash(h *maphash.Hash)     { maphash.WriteComparable(h, p) }

type Inner struct {
	Flag  bool
	Ptr   *int
	Names []string
	Pts   []Point
	M     map[string]int
	F     func()
}

func (i Inner) Len() int           { return len(i.Names) }
func (i *Inner) PtrLen() int       { return len(i.Names) }
func (i Inner) Pair() (int, int)   { return 0, 0 }
func (i Inner) Scale(k int) int    { return k }

// @CmpBy(Inner.Len())
type Outer struct {
	Inner Inner
	P     Point
	S     Shape
	Tags  [2]string
	Next  *Outer
}

// @CmpBy(Area())
// @HashBy(Area())
type Shape interface{ Area() int }
`

func classifier(t *testing.T) (*Classifier, *TypeInfo) {
	t.Helper()

	dir := writeModule(t, map[string]string{"shapes.go": classifySource})

	graph, err := NewAnalyzer(WithDir(dir)).LoadPackages(context.Background(), ".")
	require.NoError(t, err)

	outer := graph.GetType(TypeID{PkgPath: "example.com/shapes", Name: "Outer"})
	require.NotNil(t, outer)

	cfg := config.Default()

	return NewClassifier(graph, cfg.Markers, cfg.Methods), outer
}

func classify(t *testing.T, c *Classifier, ti *TypeInfo, text string) (Class, error) {
	t.Helper()

	sel, err := selector.Parse(text)
	require.NoError(t, err)

	return c.Classify(ti, sel)
}

func TestClassify(t *testing.T) {
	c, outer := classifier(t)

	tests := []struct {
		sel       string
		kind      ValueKind
		elem      ValueKind
		orderable bool
		hashable  bool
	}{
		{sel: "Inner.Flag", kind: ValueBool, orderable: true, hashable: true},
		{sel: "Inner.Ptr", kind: ValuePointer, elem: ValueOrdered, orderable: true, hashable: true},
		{sel: "Inner.Names", kind: ValueSlice, elem: ValueOrdered, orderable: true, hashable: true},
		{sel: "Inner.Pts", kind: ValueSlice, elem: ValueComparable, orderable: true, hashable: true},
		{sel: "Inner.M", kind: ValueOther},
		{sel: "Inner.Len()", kind: ValueOrdered, orderable: true, hashable: true},
		{sel: "Inner.PtrLen()", kind: ValueOrdered, orderable: true, hashable: true},
		{sel: "P", kind: ValueComparable, orderable: true, hashable: true},
		{sel: "P.X", kind: ValueOrdered, orderable: true, hashable: true},
		{sel: "S", kind: ValueComparable, orderable: true, hashable: true},
		{sel: "Tags", kind: ValueComparable, hashable: true},
		{sel: "Next", kind: ValuePointer, elem: ValueOther, orderable: true},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			cls, err := classify(t, c, outer, tt.sel)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, cls.Kind, cls.Kind.String())
			if cls.Elem != nil {
				assert.Equal(t, tt.elem, cls.Elem.Kind, cls.Elem.Kind.String())
			}

			assert.Equal(t, tt.orderable, cls.Orderable(), "orderable")
			assert.Equal(t, tt.hashable, cls.Hashable(), "hashable")
		})
	}
}

func TestClassify_Explain(t *testing.T) {
	c, outer := classifier(t)

	tests := map[string]string{
		"Inner.M":     "maps support neither == nor <",
		"Inner.F":     "funcs support neither == nor <",
		"Tags":        "supports == but not <",
		"Inner.Flag":  "booleans have no cmp.Ordered order",
		"Next":        "field Inner is not comparable",
		"Inner.Names": "",
		"P.X":         "",
	}

	for sel, want := range tests {
		t.Run(sel, func(t *testing.T) {
			cls, err := classify(t, c, outer, sel)
			require.NoError(t, err)
			assert.Equal(t, want, cls.Explain())
		})
	}
}

func TestClassify_Routines(t *testing.T) {
	c, outer := classifier(t)

	p, err := classify(t, c, outer, "P")
	require.NoError(t, err)
	assert.Equal(t, &Callable{Name: "Compare"}, p.Comparer)
	assert.Equal(t, &Callable{Name: "Hash"}, p.Hasher)

	s, err := classify(t, c, outer, "S")
	require.NoError(t, err)
	assert.Equal(t, &Callable{Name: "CompareShape", PkgPath: "example.com/shapes"}, s.Comparer)
	assert.Equal(t, &Callable{Name: "HashShape", PkgPath: "example.com/shapes"}, s.Hasher)
	assert.False(t, s.Comparer.IsMethod())

	next, err := classify(t, c, outer, "Next")
	require.NoError(t, err)
	require.NotNil(t, next.Elem)
	assert.Equal(t, &Callable{Name: "Compare"}, next.Elem.Comparer, "annotated types count as comparable")
	assert.Nil(t, next.Elem.Hasher)

	pts, err := classify(t, c, outer, "Inner.Pts")
	require.NoError(t, err)
	assert.Equal(t, &Callable{Name: "Compare"}, pts.Elem.Comparer)
}

func TestClassify_Positional(t *testing.T) {
	c, outer := classifier(t)

	cls, err := c.Classify(outer, selector.Position(1))
	require.NoError(t, err)
	assert.Equal(t, &Callable{Name: "Compare"}, cls.Comparer)

	_, err = c.Classify(outer, selector.Position(9))
	assert.Error(t, err)
}

func TestClassify_Unresolved(t *testing.T) {
	c, outer := classifier(t)

	tests := []struct {
		sel     string
		segment string
		reason  string
	}{
		{"Inner.Lne()", "Lne", "no field or method"},
		{"Inner.Len", "Len", "method must be called without arguments and return one value"},
		{"Inner.Pair()", "Pair", "method must be called without arguments and return one value"},
		{"Inner.Scale()", "Scale", "method must be called without arguments and return one value"},
		{"Inner.F()", "F", "field is not a function without parameters"},
		{"P.X.Y", "Y", "no field or method"},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			_, err := classify(t, c, outer, tt.sel)

			var ue *UnresolvedError
			require.True(t, errors.As(err, &ue), "%v", err)
			assert.Equal(t, tt.sel, ue.Selector)
			assert.Equal(t, tt.segment, ue.Segment)
			assert.Equal(t, tt.reason, ue.Reason)
		})
	}

	_, err := classify(t, c, outer, "Inner.Lne()")

	var ue *UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Candidates, "Len")
	assert.Contains(t, ue.Candidates, "Flag")
}

func TestClassify_WithoutTypes(t *testing.T) {
	c := NewClassifier(nil, config.Default().Markers, config.Default().Methods)

	cls, err := c.Classify(&TypeInfo{ID: TypeID{Name: "T"}}, selector.Field("Anything"))
	require.NoError(t, err)
	assert.Equal(t, ValueUnknown, cls.Kind)
	assert.True(t, cls.Orderable())
	assert.True(t, cls.Hashable())
}

func TestMembers(t *testing.T) {
	_, outer := classifier(t)

	field := outer.Fields[1]
	assert.Equal(t, "P", field.Name)
	assert.Equal(t, []string{"Compare", "Hash", "X", "Y"}, Members(field.GoType))
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "CompareNote", FuncName("Compare", "Note"))
	assert.Equal(t, "HashNote", FuncName("Hash", "note"))
}
