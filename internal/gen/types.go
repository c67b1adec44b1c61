package gen

import (
	"go/types"

	"github.com/dave/jennifer/jen"
)

// Import paths referenced by generated code.
const (
	cmpPkg     = "cmp"
	slicesPkg  = "slices"
	maphashPkg = "hash/maphash"
	// RuntimePkg holds the helpers for booleans, pointers and slices.
	RuntimePkg = "cmpby-generator/cmpby"
)

// typeCode renders a go/types type with package-qualified names.
func typeCode(t types.Type) jen.Code {
	switch t := t.(type) {
	case *types.Named:
		return namedCode(t.Obj(), t.TypeArgs())
	case *types.Alias:
		return namedCode(t.Obj(), t.TypeArgs())
	case *types.Basic:
		return jen.Id(t.Name())
	case *types.Pointer:
		return jen.Op("*").Add(typeCode(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(typeCode(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(typeCode(t.Elem()))
	case *types.Map:
		return jen.Map(typeCode(t.Key())).Add(typeCode(t.Elem()))
	default:
		return jen.Id(types.TypeString(t, func(p *types.Package) string { return p.Name() }))
	}
}

func namedCode(obj *types.TypeName, args *types.TypeList) jen.Code {
	var s *jen.Statement
	if obj.Pkg() == nil {
		s = jen.Id(obj.Name())
	} else {
		s = jen.Qual(obj.Pkg().Path(), obj.Name())
	}

	if args.Len() == 0 {
		return s
	}

	list := make([]jen.Code, args.Len())
	for i := range args.Len() {
		list[i] = typeCode(args.At(i))
	}

	return s.Types(list...)
}
