package gen

import (
	"github.com/dave/jennifer/jen"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/plan"
)

// compareChain returns the body of a three-way comparison of x and y: each
// step but the last returns early when it decides, the last step's result
// is returned as is.
func compareChain(steps []plan.Step, x, y, caseFn string) []jen.Code {
	body := make([]jen.Code, 0, len(steps))

	for i, s := range steps {
		expr := compareExpr(operand(x, caseFn, s), operand(y, caseFn, s), s.Class)

		if i == len(steps)-1 {
			body = append(body, jen.Return(expr))
			break
		}

		body = append(body, jen.If(
			jen.Id("c").Op(":=").Add(expr),
			jen.Id("c").Op("!=").Lit(0),
		).Block(jen.Return(jen.Id("c"))))
	}

	return body
}

// compareExpr renders an int-valued comparison of a and b.
func compareExpr(a, b jen.Code, cls analyze.Class) *jen.Statement {
	switch {
	case cls.Comparer != nil && cls.Comparer.IsMethod():
		return jen.Add(a).Dot(cls.Comparer.Name).Call(b)
	case cls.Comparer != nil:
		return jen.Qual(cls.Comparer.PkgPath, cls.Comparer.Name).Call(a, b)
	case cls.Kind == analyze.ValueBool:
		return jen.Qual(RuntimePkg, "CompareBool").Call(a, b)
	case cls.Kind == analyze.ValuePointer:
		return jen.Qual(RuntimePkg, "ComparePtr").Call(a, b, compareFunc(*cls.Elem))
	case cls.Kind == analyze.ValueSlice && plainOrdered(*cls.Elem):
		return jen.Qual(slicesPkg, "Compare").Call(a, b)
	case cls.Kind == analyze.ValueSlice:
		return jen.Qual(slicesPkg, "CompareFunc").Call(a, b, compareFunc(*cls.Elem))
	default:
		return jen.Qual(cmpPkg, "Compare").Call(a, b)
	}
}

// compareFunc renders a func(a, b T) int value for elements of class cls.
func compareFunc(cls analyze.Class) jen.Code {
	switch {
	case cls.Comparer != nil && !cls.Comparer.IsMethod():
		return jen.Qual(cls.Comparer.PkgPath, cls.Comparer.Name)
	case cls.Comparer != nil && cls.Type != nil:
		// method expression, e.g. Note.Compare
		return jen.Add(typeCode(cls.Type)).Dot(cls.Comparer.Name)
	case cls.Kind == analyze.ValueBool && cls.Comparer == nil:
		return jen.Qual(RuntimePkg, "CompareBool")
	case plainOrdered(cls) || cls.Type == nil:
		return jen.Qual(cmpPkg, "Compare")
	default:
		return jen.Func().Params(jen.List(jen.Id("a"), jen.Id("b")).Add(typeCode(cls.Type))).Int().Block(
			jen.Return(compareExpr(jen.Id("a"), jen.Id("b"), cls)),
		)
	}
}

// plainOrdered reports whether cmp.Compare applies to the class directly.
func plainOrdered(cls analyze.Class) bool {
	return cls.Comparer == nil && (cls.Kind == analyze.ValueOrdered || cls.Kind == analyze.ValueUnknown)
}
