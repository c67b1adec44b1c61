package gen

import (
	"github.com/dave/jennifer/jen"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/plan"
)

// hashChain returns one statement per step writing the selected value of x
// into h. Every step contributes.
func hashChain(steps []plan.Step, h, x, caseFn string) []jen.Code {
	body := make([]jen.Code, 0, len(steps))
	for _, s := range steps {
		body = append(body, hashStmt(jen.Id(h), operand(x, caseFn, s), s.Class))
	}

	return body
}

// hashStmt renders a statement writing v into the hash h.
func hashStmt(h, v jen.Code, cls analyze.Class) *jen.Statement {
	switch {
	case cls.Hasher != nil && cls.Hasher.IsMethod():
		return jen.Add(v).Dot(cls.Hasher.Name).Call(h)
	case cls.Hasher != nil:
		return jen.Qual(cls.Hasher.PkgPath, cls.Hasher.Name).Call(h, v)
	case cls.Kind == analyze.ValueBool:
		return jen.Qual(RuntimePkg, "HashBool").Call(h, v)
	case cls.Kind == analyze.ValuePointer:
		return jen.Qual(RuntimePkg, "HashPtr").Call(h, v, hashFunc(*cls.Elem))
	case cls.Kind == analyze.ValueSlice:
		return jen.Qual(RuntimePkg, "HashSlice").Call(h, v, hashFunc(*cls.Elem))
	default:
		return jen.Qual(maphashPkg, "WriteComparable").Call(h, v)
	}
}

// hashFunc renders a func(*maphash.Hash, T) value for elements of class cls.
func hashFunc(cls analyze.Class) jen.Code {
	switch {
	case cls.Hasher != nil && !cls.Hasher.IsMethod():
		return jen.Qual(cls.Hasher.PkgPath, cls.Hasher.Name)
	case cls.Hasher == nil && cls.Kind == analyze.ValueBool:
		return jen.Qual(RuntimePkg, "HashBool")
	case cls.Hasher == nil && cls.Kind != analyze.ValuePointer && cls.Kind != analyze.ValueSlice,
		cls.Type == nil:
		return jen.Qual(maphashPkg, "WriteComparable")
	default:
		return jen.Func().Params(
			jen.Id("h").Op("*").Qual(maphashPkg, "Hash"),
			jen.Id("v").Add(typeCode(cls.Type)),
		).Block(hashStmt(jen.Id("h"), jen.Id("v"), cls))
	}
}
