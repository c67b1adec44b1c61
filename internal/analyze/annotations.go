package analyze

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"
)

// ParseAnnotations extracts the annotations of a comment group. An annotation
// starts a comment line with "@Name" and may carry a parenthesized argument
// list continuing over the following lines until the parentheses balance.
func ParseAnnotations(fset *token.FileSet, groups ...*ast.CommentGroup) []Annotation {
	var out []Annotation

	for _, cg := range groups {
		if cg == nil {
			continue
		}

		lines := commentLines(cg)
		for i := 0; i < len(lines); i++ {
			ann, consumed, ok := scanAnnotation(lines[i:])
			if !ok {
				continue
			}

			ann.Pos = fset.Position(lines[i].pos)
			out = append(out, ann)
			i += consumed - 1
		}
	}

	return out
}

type commentLine struct {
	text string    // line text after the comment markers
	pos  token.Pos // position of the first byte of text
}

// commentLines splits a comment group into lines stripped of comment markers
// and leading blanks, remembering where each line starts.
func commentLines(cg *ast.CommentGroup) []commentLine {
	var lines []commentLine

	for _, c := range cg.List {
		body, start := c.Text, 2
		switch {
		case strings.HasPrefix(body, "//"):
			body = body[2:]
		case strings.HasPrefix(body, "/*"):
			body = strings.TrimSuffix(body[2:], "*/")
		default:
			start = 0
		}

		offset := start
		for _, raw := range strings.SplitAfter(body, "\n") {
			line := strings.TrimRight(raw, "\r\n")
			trimmed := strings.TrimLeft(line, " \t")
			// block comment continuation lines often start with "*"
			if strings.HasPrefix(c.Text, "/*") && strings.HasPrefix(trimmed, "*") {
				trimmed = strings.TrimLeft(trimmed[1:], " \t")
			}

			lead := len(line) - len(trimmed)
			lines = append(lines, commentLine{
				text: trimmed,
				pos:  c.Slash + token.Pos(offset+lead),
			})
			offset += len(raw)
		}
	}

	return lines
}

// scanAnnotation reads one annotation starting at lines[0]. It returns the
// number of lines consumed.
func scanAnnotation(lines []commentLine) (Annotation, int, bool) {
	text := lines[0].text
	if !strings.HasPrefix(text, "@") {
		return Annotation{}, 0, false
	}

	name := identPrefix(text[1:])
	if name == "" {
		return Annotation{}, 0, false
	}

	ann := Annotation{Name: name}

	rest := strings.TrimLeft(text[1+len(name):], " \t")
	if !strings.HasPrefix(rest, "(") {
		return ann, 1, true
	}

	ann.HasArgs = true

	var (
		args    strings.Builder
		depth   int
		quote   rune
		escaped bool
	)

	chunk := rest
	for n := 0; n < len(lines); n++ {
		if n > 0 {
			chunk = lines[n].text
			args.WriteByte('\n')
		}

		for i, r := range chunk {
			if n == 0 && i == 0 {
				depth = 1
				continue
			}

			switch {
			case escaped:
				escaped = false
			case quote != 0:
				if r == '\\' && quote == '"' {
					escaped = true
				} else if r == quote {
					quote = 0
				}
			case r == '"' || r == '`':
				quote = r
			case r == '(':
				depth++
			case r == ')':
				depth--
				if depth == 0 {
					ann.Args = args.String()
					return ann, n + 1, true
				}
			}

			args.WriteRune(r)
		}
	}

	ann.Args = args.String()
	ann.Unterminated = true

	return ann, len(lines), true
}

func identPrefix(s string) string {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return s[:i]
	}

	return s
}
