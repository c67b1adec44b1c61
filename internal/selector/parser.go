package selector

import (
	"fmt"
	"go/token"
	"slices"
	"strconv"

	pc "github.com/shibukawa/parsercombinator"
)

func kind(label string, kinds ...token.Token) pc.Parser[lexeme] {
	return pc.Trace[lexeme](label, func(_ *pc.ParseContext[lexeme], tokens []pc.Token[lexeme]) (int, []pc.Token[lexeme], error) {
		if len(tokens) > 0 && slices.Contains(kinds, tokens[0].Val.tok) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	})
}

var (
	ident  = kind("identifier", token.IDENT)
	period = kind("dot", token.PERIOD)
	lparen = kind("parenOpen", token.LPAREN)
	rparen = kind("parenClose", token.RPAREN)
	comma  = kind("comma", token.COMMA)
	str    = kind("string", token.STRING)

	// path: ident ('.' ident)* ('(' ')')?
	path = pc.Trans(
		pc.Seq(
			ident,
			pc.ZeroOrMore("segment", pc.Seq(period, ident)),
			pc.Optional(pc.Seq(lparen, rparen)),
		),
		reducePath,
	)

	item = pc.Or(path, str)

	// items: (item (',' item)* ','?)?
	items = pc.Optional(pc.Seq(
		item,
		pc.ZeroOrMore("items", pc.Seq(comma, item)),
		pc.Optional(comma),
	))

	// list: items EOS
	list = pc.Seq(items, pc.EOS[lexeme]())

	single = pc.Seq(item, pc.EOS[lexeme]())
)

// reducePath folds the tokens of a path into one node carrying a Selector.
func reducePath(_ *pc.ParseContext[lexeme], tokens []pc.Token[lexeme]) ([]pc.Token[lexeme], error) {
	var sel Selector

	for _, t := range tokens {
		switch t.Val.tok {
		case token.IDENT:
			sel.Segments = append(sel.Segments, Segment{Name: t.Val.lit})
		case token.RPAREN:
			sel.Segments[len(sel.Segments)-1].Call = true
		}
	}

	node := tokens[0]
	node.Type = "selector"
	node.Val.sel = &sel

	return []pc.Token[lexeme]{node}, nil
}

// ParseList parses the contents of a type-level annotation into a selector
// sequence. An empty or blank text yields an empty sequence.
func ParseList(text string) (Sequence, error) {
	seq, err := parsePrimary(text)
	if err == nil {
		return seq, nil
	}

	if legacy, lerr := parseLegacy(text); lerr == nil {
		return legacy, nil
	}

	return nil, err
}

// Parse parses a single selector.
func Parse(text string) (Selector, error) {
	return parseSingle(text, false)
}

func parsePrimary(text string) (Sequence, error) {
	tokens, err := tokenize(text, false)
	if err != nil {
		return nil, err
	}

	pctx := pc.NewParseContext[lexeme]()

	_, nodes, err := list(pctx, tokens)
	if err != nil {
		offset, found := stopOffset(text, tokens)

		return nil, &SyntaxError{
			Text:   text,
			Offset: offset,
			Msg: fmt.Sprintf("unexpected %s; expected a comma separated list of member paths, "+
				"zero-argument calls or string literals", found),
		}
	}

	seq := Sequence{}

	for _, it := range nodes {
		switch {
		case it.Val.sel != nil:
			seq = append(seq, *it.Val.sel)
		case it.Val.tok == token.STRING:
			sel, err := parseQuoted(it.Val.lit)
			if err != nil {
				return nil, &SyntaxError{Text: text, Offset: it.Val.offset, Msg: err.Error()}
			}

			seq = append(seq, sel)
		}
	}

	return seq, nil
}

// stopOffset returns where the primary form stops matching tokens, and the
// token found there.
func stopOffset(text string, tokens []pc.Token[lexeme]) (int, string) {
	n, _, err := items(pc.NewParseContext[lexeme](), tokens)
	if err != nil || n >= len(tokens) {
		return len(text), "end of list"
	}

	return tokens[n].Val.offset, strconv.Quote(tokens[n].Val.lit)
}

// parseQuoted unquotes a Go string literal and parses its contents as a
// selector.
func parseQuoted(lit string) (Selector, error) {
	content, err := strconv.Unquote(lit)
	if err != nil {
		return Selector{}, &SyntaxError{Text: lit, Msg: "malformed string literal"}
	}

	return parseSingle(content, true)
}

func parseSingle(text string, quoted bool) (Selector, error) {
	tokens, err := tokenize(text, quoted)
	if err != nil {
		return Selector{}, err
	}

	pctx := pc.NewParseContext[lexeme]()

	_, nodes, err := single(pctx, tokens)
	if err != nil || len(nodes) == 0 {
		return Selector{}, &SyntaxError{Text: text, Msg: "expected a member path or a zero-argument call"}
	}

	node := nodes[0].Val
	if node.sel == nil {
		return parseQuoted(node.lit)
	}

	sel := *node.sel
	sel.Quoted = quoted

	return sel, nil
}
