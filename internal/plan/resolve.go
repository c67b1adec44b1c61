package plan

import (
	"fmt"
	"go/token"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/selector"
)

// Entries converts a parsed type-level list into resolution entries. With
// recognizeMarker unset the "_fields" token stays an ordinary selector.
func Entries(seq selector.Sequence, pos token.Position, recognizeMarker bool) []Entry {
	out := make([]Entry, 0, len(seq))

	for _, sel := range seq {
		if recognizeMarker && sel.IsMarker() {
			out = append(out, FieldsEntry{Pos: pos})
			continue
		}

		out = append(out, SelectorEntry{Selector: sel, Pos: pos})
	}

	return out
}

// ParseAttachments parses every attachment of marker on t, concatenated in
// source order.
func ParseAttachments(t *analyze.TypeInfo, marker string, recognizeMarker bool) ([]Entry, error) {
	var out []Entry

	for _, a := range t.AnnotationsNamed(marker) {
		if a.Unterminated {
			return nil, diagnostic.NewError(diagnostic.CodeGrammar, a.Pos, t.ID.Name, "",
				fmt.Sprintf("@%s: missing closing parenthesis", marker), nil)
		}

		if !a.HasArgs {
			continue
		}

		seq, err := selector.ParseList(a.Args)
		if err != nil {
			return nil, diagnostic.NewError(diagnostic.CodeGrammar, a.Pos, t.ID.Name, "",
				fmt.Sprintf("@%s: expected a list of selectors such as @%s(Field, Method(), \"nested.Path\")", marker, marker), err)
		}

		out = append(out, Entries(seq, a.Pos, recognizeMarker)...)
	}

	return out, nil
}

// Resolve merges the type-level entries with the marked fields.
//
// With interleave set, a FieldsEntry is replaced in place by the fields and
// the fields are not appended again. Otherwise, and whenever no FieldsEntry
// is present, the fields follow the type-level selectors. FieldsEntry items
// are dropped when interleave is unset.
func Resolve(typeLevel []Entry, fields []SelectorEntry, interleave bool) ([]SelectorEntry, error) {
	var (
		out    []SelectorEntry
		marker *FieldsEntry
	)

	for _, e := range typeLevel {
		switch e := e.(type) {
		case SelectorEntry:
			out = append(out, e)
		case FieldsEntry:
			if !interleave {
				continue
			}

			if marker != nil {
				return nil, diagnostic.NewError(diagnostic.CodeGrammar, e.Pos, "", "",
					fmt.Sprintf("%s may appear at most once", selector.FieldsMarker), nil)
			}

			marker = &e
			out = append(out, fields...)
		}
	}

	if marker == nil {
		out = append(out, fields...)
	}

	if len(out) == 0 {
		return nil, diagnostic.NewError(diagnostic.CodeEmptySelection, token.Position{}, "", "",
			"no selector to operate on", nil)
	}

	return out, nil
}
