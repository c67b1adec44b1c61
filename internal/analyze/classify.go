package analyze

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"cmpby-generator/internal/config"
	"cmpby-generator/internal/selector"
)

// ValueKind groups selected values by how they are compared and hashed.
type ValueKind int

const (
	ValueUnknown    ValueKind = iota // type could not be determined
	ValueOrdered                     // satisfies cmp.Ordered
	ValueBool                        // boolean
	ValuePointer                     // optional value, nil sorts first
	ValueSlice                       // compared element by element
	ValueComparable                  // supports == but has no order
	ValueOther                       // neither ordered nor comparable
)

// String returns a human-readable representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueUnknown:
		return "unknown"
	case ValueOrdered:
		return "ordered"
	case ValueBool:
		return "bool"
	case ValuePointer:
		return "pointer"
	case ValueSlice:
		return "slice"
	case ValueComparable:
		return "comparable"
	case ValueOther:
		return "other"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Callable names a comparison or hash routine provided by a type.
type Callable struct {
	Name string
	// PkgPath is set for package functions; methods leave it empty.
	PkgPath string
}

// IsMethod reports whether the callable is invoked as a method.
func (c *Callable) IsMethod() bool {
	return c.PkgPath == ""
}

// Class is the comparison and hash strategy for a selected value.
type Class struct {
	Kind ValueKind
	// Type is the static type of the value; nil when unknown.
	Type types.Type
	// Elem classifies pointer targets and slice elements.
	Elem *Class
	// Comparer is the Compare routine of the type, if any.
	Comparer *Callable
	// Hasher is the Hash routine of the type, if any.
	Hasher *Callable
	// Reason tells what the type supports when it is not plainly ordered.
	Reason string
}

// Explain returns the reason recorded for the class, or for the pointer
// target or slice element it wraps.
func (c Class) Explain() string {
	if c.Reason == "" && c.Elem != nil {
		return c.Elem.Explain()
	}

	return c.Reason
}

// Orderable reports whether the generated comparison compiles for the class.
func (c Class) Orderable() bool {
	switch {
	case c.Comparer != nil:
		return true
	case c.Kind == ValuePointer || c.Kind == ValueSlice:
		return c.Elem != nil && c.Elem.Orderable()
	default:
		return c.Kind == ValueOrdered || c.Kind == ValueBool || c.Kind == ValueUnknown
	}
}

// Hashable reports whether the generated hash compiles for the class.
func (c Class) Hashable() bool {
	switch {
	case c.Hasher != nil:
		return true
	case c.Kind == ValuePointer || c.Kind == ValueSlice:
		return c.Elem != nil && c.Elem.Hashable()
	default:
		return c.Kind != ValueOther
	}
}

// UnresolvedError reports a selector segment that names no field or method.
type UnresolvedError struct {
	Selector   string
	Segment    string
	Reason     string
	Candidates []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("selector %q: %s %q", e.Selector, e.Reason, e.Segment)
}

// Classifier resolves selectors against go/types information. Types
// annotated in the graph count as providing the routines the generator is
// about to emit for them.
type Classifier struct {
	graph   *TypeGraph
	markers config.Markers
	names   config.Names
}

// NewClassifier creates a Classifier. graph may be nil.
func NewClassifier(graph *TypeGraph, markers config.Markers, names config.Names) *Classifier {
	return &Classifier{graph: graph, markers: markers, names: names}
}

// Classify resolves sel starting at an instance of t.
func (c *Classifier) Classify(t *TypeInfo, sel selector.Selector) (Class, error) {
	if t.GoType == nil {
		return Class{Kind: ValueUnknown}, nil
	}

	var pkg *types.Package
	if named, ok := t.GoType.(*types.Named); ok {
		pkg = named.Obj().Pkg()
	}

	cur := t.GoType
	for _, seg := range sel.Segments {
		next, err := step(cur, pkg, seg)
		if err != nil {
			err.Selector = sel.String()
			return Class{}, err
		}

		cur = next
	}

	return c.classifyType(cur), nil
}

// step resolves one segment against cur.
func step(cur types.Type, pkg *types.Package, seg selector.Segment) (types.Type, *UnresolvedError) {
	if seg.Positional {
		switch u := cur.Underlying().(type) {
		case *types.Struct:
			if seg.Index < u.NumFields() {
				return u.Field(seg.Index).Type(), nil
			}
		case *types.Array:
			return u.Elem(), nil
		case *types.Slice:
			return u.Elem(), nil
		}

		return nil, &UnresolvedError{Segment: seg.String(), Reason: "no member at position"}
	}

	obj, _, _ := types.LookupFieldOrMethod(cur, true, pkg, seg.Name)
	switch o := obj.(type) {
	case *types.Var:
		if !seg.Call {
			return o.Type(), nil
		}

		sig, ok := o.Type().Underlying().(*types.Signature)
		if !ok || !nullary(sig) {
			return nil, &UnresolvedError{Segment: seg.Name, Reason: "field is not a function without parameters"}
		}

		return sig.Results().At(0).Type(), nil

	case *types.Func:
		sig, ok := o.Type().(*types.Signature)
		if !seg.Call || !ok || !nullary(sig) {
			return nil, &UnresolvedError{Segment: seg.Name, Reason: "method must be called without arguments and return one value"}
		}

		return sig.Results().At(0).Type(), nil

	default:
		return nil, &UnresolvedError{
			Segment:    seg.Name,
			Reason:     "no field or method",
			Candidates: Members(cur),
		}
	}
}

func nullary(sig *types.Signature) bool {
	return sig.Params().Len() == 0 && sig.Results().Len() == 1 && !sig.Variadic()
}

// Members lists the field and method names reachable from a value of type t.
func Members(t types.Type) []string {
	var names []string

	if st, ok := t.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			names = append(names, st.Field(i).Name())
		}
	}

	mt := t
	if !types.IsInterface(t) {
		if _, isPtr := t.(*types.Pointer); !isPtr {
			mt = types.NewPointer(t)
		}
	}

	ms := types.NewMethodSet(mt)
	for i := range ms.Len() {
		names = append(names, ms.At(i).Obj().Name())
	}

	slices.Sort(names)

	return slices.Compact(names)
}

func (c *Classifier) classifyType(t types.Type) Class {
	cls := Class{
		Type:     t,
		Comparer: c.comparer(t),
		Hasher:   c.hasher(t),
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Kind() == types.Invalid {
			cls.Kind = ValueUnknown
			return cls
		}

	case *types.Pointer:
		elem := c.classifyType(u.Elem())
		cls.Kind = ValuePointer
		cls.Elem = &elem

		return cls

	case *types.Slice:
		elem := c.classifyType(u.Elem())
		cls.Kind = ValueSlice
		cls.Elem = &elem

		return cls
	}

	res := ScoreCapability(t)

	switch {
	case res.Capability == CapabilityOrder:
		cls.Kind = ValueOrdered
	case isBool(t):
		cls.Kind, cls.Reason = ValueBool, res.Reason
	case res.Capability == CapabilityEquality:
		cls.Kind, cls.Reason = ValueComparable, res.Reason
	default:
		cls.Kind, cls.Reason = ValueOther, res.Reason
	}

	return cls
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}

// comparer finds a Compare(T) int method of t or a Compare routine the
// generator will emit for t.
func (c *Classifier) comparer(t types.Type) *Callable {
	if info := c.generated(t, c.markers.Ordering, c.markers.Combined); info != nil {
		return routine(info, c.names.Compare)
	}

	for _, name := range uniq(c.names.Compare, "Compare") {
		fn := lookupMethod(t, name)
		if fn == nil {
			continue
		}

		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() == 1 && sig.Results().Len() == 1 &&
			types.Identical(sig.Params().At(0).Type(), t) &&
			isInt(sig.Results().At(0).Type()) {
			return &Callable{Name: name}
		}
	}

	return nil
}

// hasher finds a Hash(*maphash.Hash) method of t or a Hash routine the
// generator will emit for t.
func (c *Classifier) hasher(t types.Type) *Callable {
	if info := c.generated(t, c.markers.Hashing, c.markers.Combined); info != nil {
		return routine(info, c.names.Hash)
	}

	for _, name := range uniq(c.names.Hash, "Hash") {
		fn := lookupMethod(t, name)
		if fn == nil {
			continue
		}

		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() == 1 && sig.Results().Len() == 0 &&
			types.TypeString(sig.Params().At(0).Type(), nil) == "*hash/maphash.Hash" {
			return &Callable{Name: name}
		}
	}

	return nil
}

// generated returns the graph entry of t when it carries one of the markers.
func (c *Classifier) generated(t types.Type, markers ...string) *TypeInfo {
	if c.graph == nil {
		return nil
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil
	}

	info := c.graph.GetType(TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()})
	if info == nil || info.Kind == TypeKindUnsupported {
		return nil
	}

	for _, m := range markers {
		if m != "" && info.Uses(m) {
			return info
		}
	}

	return nil
}

func routine(info *TypeInfo, method string) *Callable {
	if info.Kind == TypeKindVariant && info.Variant == VariantSealed {
		return &Callable{Name: FuncName(method, info.ID.Name), PkgPath: info.ID.PkgPath}
	}

	return &Callable{Name: method}
}

// FuncName is the package function emitted in place of method for a sealed
// interface named typeName.
func FuncName(method, typeName string) string {
	return method + strings.ToUpper(typeName[:1]) + typeName[1:]
}

// lookupMethod returns the value-receiver method name of t.
func lookupMethod(t types.Type, name string) *types.Func {
	var pkg *types.Package
	if named, ok := types.Unalias(t).(*types.Named); ok {
		pkg = named.Obj().Pkg()
	}

	obj, _, _ := types.LookupFieldOrMethod(t, false, pkg, name)
	fn, _ := obj.(*types.Func)

	return fn
}

func isInt(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Int
}

func uniq(names ...string) []string {
	var out []string

	for _, n := range names {
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}

	return out
}
