package gen

import (
	"github.com/dave/jennifer/jen"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/plan"
)

// emitResult renders the routines of one planned type into f. Records and
// enums get methods; sealed interfaces get package functions. The case
// index helper follows the routines that call it.
func (g *Generator) emitResult(f *jen.File, r *plan.Result) {
	if r.AsFunctions() {
		g.emitFunctions(f, r)
	} else {
		g.emitMethods(f, r)
	}

	if r.UsesCaseOrder() {
		g.emitCaseIndex(f, r)
	}
}

// caseIndexFunc names the helper ranking the cases of the variant typeName.
func caseIndexFunc(typeName string) string {
	return analyze.FuncName("caseIndex", typeName)
}

// emitCaseIndex renders a function returning the declaration index of the
// case held by its argument. Values outside the known cases, including a
// nil interface, rank -1.
func (g *Generator) emitCaseIndex(f *jen.File, r *plan.Result) {
	var (
		t  = r.Type
		x  = g.cfg.Receiver
		fn = caseIndexFunc(t.ID.Name)
	)

	clauses := make([]jen.Code, 0, len(t.Cases)+1)

	for i, c := range t.Cases {
		var match []jen.Code

		switch {
		case t.Variant == analyze.VariantEnum:
			match = []jen.Code{jen.Id(c.Name)}
		case c.PointerOnly:
			match = []jen.Code{jen.Op("*").Id(c.Name)}
		default:
			match = []jen.Code{jen.Id(c.Name), jen.Op("*").Id(c.Name)}
		}

		clauses = append(clauses, jen.Case(match...).Block(jen.Return(jen.Lit(i))))
	}

	clauses = append(clauses, jen.Default().Block(jen.Return(jen.Lit(-1))))

	subject := jen.Id(x)
	if t.Variant == analyze.VariantSealed {
		subject = jen.Id(x).Assert(jen.Type())
	}

	f.Commentf("%s returns the declaration index of the case held by %s, or -1.", fn, x)
	f.Func().Id(fn).Params(jen.Id(x).Id(t.ID.Name)).Int().Block(
		jen.Switch(subject).Block(clauses...),
	)
	f.Line()
}

func (g *Generator) emitMethods(f *jen.File, r *plan.Result) {
	var (
		name   = r.Type.ID.Name
		names  = g.cfg.Methods
		x, y   = g.cfg.Receiver, g.cfg.Other
		recv   = jen.Id(x).Id(name)
		caseFn = caseIndexFunc(name)
	)

	if r.EmitOrdering {
		f.Commentf("%s reports whether %s and %s are equal by %s.", names.Equal, x, y, plan.Selectors(r.Ordering))
		f.Func().Params(recv.Clone()).Id(names.Equal).Params(jen.Id(y).Id(name)).Bool().Block(
			jen.Return(jen.Id(x).Dot(names.Compare).Call(jen.Id(y)).Op("==").Lit(0)),
		)
		f.Line()

		f.Commentf("%s reports whether %s sorts before %s.", names.Less, x, y)
		f.Func().Params(recv.Clone()).Id(names.Less).Params(jen.Id(y).Id(name)).Bool().Block(
			jen.Return(jen.Id(x).Dot(names.Compare).Call(jen.Id(y)).Op("<").Lit(0)),
		)
		f.Line()

		f.Commentf("%s orders %s and %s by %s.", names.Compare, x, y, plan.Selectors(r.Ordering))
		f.Func().Params(recv.Clone()).Id(names.Compare).Params(jen.Id(y).Id(name)).Int().Block(
			compareChain(r.Ordering, x, y, caseFn)...,
		)
		f.Line()
	}

	if r.EmitHashing {
		f.Commentf("%s writes %s into h.", names.Hash, plan.Selectors(r.Hashing))
		f.Func().Params(recv.Clone()).Id(names.Hash).Params(jen.Id("h").Op("*").Qual(maphashPkg, "Hash")).Block(
			hashChain(r.Hashing, "h", x, caseFn)...,
		)
		f.Line()
	}
}

func (g *Generator) emitFunctions(f *jen.File, r *plan.Result) {
	var (
		name   = r.Type.ID.Name
		names  = g.cfg.Methods
		x, y   = g.cfg.Receiver, g.cfg.Other
		cmpFn  = analyze.FuncName(names.Compare, name)
		caseFn = caseIndexFunc(name)
	)

	pair := func() jen.Code { return jen.List(jen.Id(x), jen.Id(y)).Id(name) }

	if r.EmitOrdering {
		eq := analyze.FuncName(names.Equal, name)
		f.Commentf("%s reports whether %s and %s are equal by %s.", eq, x, y, plan.Selectors(r.Ordering))
		f.Func().Id(eq).Params(pair()).Bool().Block(
			jen.Return(jen.Id(cmpFn).Call(jen.Id(x), jen.Id(y)).Op("==").Lit(0)),
		)
		f.Line()

		less := analyze.FuncName(names.Less, name)
		f.Commentf("%s reports whether %s sorts before %s.", less, x, y)
		f.Func().Id(less).Params(pair()).Bool().Block(
			jen.Return(jen.Id(cmpFn).Call(jen.Id(x), jen.Id(y)).Op("<").Lit(0)),
		)
		f.Line()

		f.Commentf("%s orders %s and %s by %s.", cmpFn, x, y, plan.Selectors(r.Ordering))
		f.Func().Id(cmpFn).Params(pair()).Int().Block(
			compareChain(r.Ordering, x, y, caseFn)...,
		)
		f.Line()
	}

	if r.EmitHashing {
		hashFn := analyze.FuncName(names.Hash, name)
		f.Commentf("%s writes %s of %s into h.", hashFn, plan.Selectors(r.Hashing), x)
		f.Func().Id(hashFn).Params(
			jen.Id("h").Op("*").Qual(maphashPkg, "Hash"),
			jen.Id(x).Id(name),
		).Block(hashChain(r.Hashing, "h", x, caseFn)...)
		f.Line()
	}
}
