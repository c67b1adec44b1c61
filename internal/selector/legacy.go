package selector

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
)

// parseLegacy accepts the looser forms older annotations used:
//
//	(Inner().Value)      parenthesized single expression
//	(A, "B.C", D())      tuple
//	A, Inner().Value     bare tuple elements
//
// String elements are re-parsed as selectors, other elements must already
// be selector-shaped.
func parseLegacy(text string) (Sequence, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return Sequence{}, nil
	}

	elems, prefix, err := legacyElements(src)
	if err != nil {
		return nil, &SyntaxError{Text: text, Msg: err.Error()}
	}

	seq := make(Sequence, 0, len(elems))

	for _, e := range elems {
		sel, err := fromExpr(e)
		if err != nil {
			return nil, &SyntaxError{Text: text, Offset: max(int(e.Pos())-1-prefix, 0), Msg: err.Error()}
		}

		seq = append(seq, sel)
	}

	return seq, nil
}

// legacyElements returns the tuple elements of src and the length of the
// synthetic prefix added before parsing.
func legacyElements(src string) ([]ast.Expr, int, error) {
	if expr, err := parser.ParseExpr(src); err == nil {
		if paren, ok := expr.(*ast.ParenExpr); ok {
			return []ast.Expr{paren.X}, 0, nil
		}

		return []ast.Expr{expr}, 0, nil
	}

	if strings.HasPrefix(src, "(") && strings.HasSuffix(src, ")") {
		if expr, err := parser.ParseExpr("_" + src); err == nil {
			if call, ok := expr.(*ast.CallExpr); ok {
				return call.Args, 1, nil
			}
		}
	}

	expr, err := parser.ParseExpr("_(" + src + ")")
	if err != nil {
		return nil, 0, err
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return nil, 0, &SyntaxError{Text: src, Msg: "not a tuple"}
	}

	return call.Args, 2, nil
}

func fromExpr(e ast.Expr) (Selector, error) {
	switch x := e.(type) {
	case *ast.BasicLit:
		if x.Kind == token.STRING {
			return parseQuoted(x.Value)
		}
	case *ast.ParenExpr:
		return fromExpr(x.X)
	case *ast.Ident:
		return Field(x.Name), nil
	case *ast.SelectorExpr:
		base, err := fromExpr(x.X)
		if err != nil {
			return Selector{}, err
		}

		base.Segments = append(base.Segments, Segment{Name: x.Sel.Name})

		return base, nil
	case *ast.CallExpr:
		if len(x.Args) != 0 || x.Ellipsis.IsValid() {
			break
		}

		base, err := fromExpr(x.Fun)
		if err != nil {
			return Selector{}, err
		}

		last := &base.Segments[len(base.Segments)-1]
		if last.Call {
			break
		}

		last.Call = true

		return base, nil
	}

	return Selector{}, &SyntaxError{Text: types.ExprString(e), Msg: "not a member path or zero-argument call"}
}
