package selector

import (
	"go/scanner"
	"go/token"

	pc "github.com/shibukawa/parsercombinator"
)

// lexeme is the value carried by parser tokens. Reduced path nodes carry
// the selector they were built into.
type lexeme struct {
	tok    token.Token
	lit    string
	offset int
	sel    *Selector
}

// tokenize scans src with the Go scanner. Automatically inserted semicolons
// are dropped. With keywordsAsIdents set, Go keywords are returned as
// identifiers so that string-literal selectors may name them.
func tokenize(src string, keywordsAsIdents bool) ([]pc.Token[lexeme], error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var errs scanner.ErrorList

	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	var tokens []pc.Token[lexeme]

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		if keywordsAsIdents && tok.IsKeyword() {
			tok = token.IDENT
		}

		raw := lit
		if raw == "" {
			raw = tok.String()
		}

		offset := file.Offset(pos)
		tokens = append(tokens, pc.Token[lexeme]{
			Type: tok.String(),
			Pos:  &pc.Pos{Line: 1, Col: offset + 1, Index: offset},
			Val:  lexeme{tok: tok, lit: raw, offset: offset},
			Raw:  raw,
		})
	}

	if errs.Len() > 0 {
		return nil, &SyntaxError{Text: src, Offset: errs[0].Pos.Offset, Msg: errs[0].Msg}
	}

	return tokens, nil
}
