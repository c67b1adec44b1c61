package gen

import (
	"github.com/dave/jennifer/jen"

	"cmpby-generator/internal/plan"
	"cmpby-generator/internal/selector"
)

// access renders sel applied to the variable root, e.g. x.Inner().Value.
// Each call returns a fresh statement. Positional segments only come from
// hand-built type descriptions; the loader names every struct field.
func access(root string, sel selector.Selector) *jen.Statement {
	s := jen.Id(root)

	for _, seg := range sel.Segments {
		if seg.Positional {
			s = s.Index(jen.Lit(seg.Index))
		} else {
			s = s.Dot(seg.Name)
		}

		if seg.Call {
			s = s.Call()
		}
	}

	return s
}

// operand renders the value step s reads from root. Case order steps call
// the caseFn helper instead of following a selector.
func operand(root, caseFn string, s plan.Step) *jen.Statement {
	if s.CaseOrder {
		return jen.Id(caseFn).Call(jen.Id(root))
	}

	return access(root, s.Selector)
}
