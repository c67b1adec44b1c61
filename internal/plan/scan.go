package plan

import (
	"fmt"
	"strings"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/common"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/selector"
)

// ScanFields returns the fields of a record carrying marker, in declaration
// order, as single-segment selectors. Variants have no fields to scan; see
// caseOrder.
func ScanFields(t *analyze.TypeInfo, marker string) ([]SelectorEntry, error) {
	if t.Kind != analyze.TypeKindRecord {
		return nil, nil
	}

	var out []SelectorEntry

	for _, f := range t.Fields {
		marks := f.Markers(marker)
		if len(marks) == 0 {
			continue
		}

		if common.IsMultiple(marks) {
			return nil, diagnostic.NewError(diagnostic.CodeDuplicateMarker, marks[1].Pos, t.ID.Name, f.Name,
				fmt.Sprintf("field %s: expected at most one @%s marker", f.Name, marker), nil)
		}

		if m := marks[0]; m.Unterminated || strings.TrimSpace(m.Args) != "" {
			return nil, diagnostic.NewError(diagnostic.CodeGrammar, m.Pos, t.ID.Name, f.Name,
				fmt.Sprintf("field %s: the @%s field marker takes no arguments", f.Name, marker), nil)
		}

		sel := selector.Field(f.Name)
		if t.Positional {
			sel = selector.Position(f.Index)
		}

		out = append(out, SelectorEntry{Selector: sel, Pos: f.Pos, Field: f.Name})
	}

	return out, nil
}

// caseOrder returns what "_fields" stands for on a variant: a single entry
// ranking the held case by declaration order. Without a marker in typeLevel
// variants get no case tie-break.
func caseOrder(typeLevel []Entry) []SelectorEntry {
	for _, e := range typeLevel {
		if m, ok := e.(FieldsEntry); ok {
			return []SelectorEntry{{Selector: selector.Field(selector.FieldsMarker), Pos: m.Pos, CaseOrder: true}}
		}
	}

	return nil
}
