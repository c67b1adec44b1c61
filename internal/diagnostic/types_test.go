package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeEmptySelection,
		Message:  "no selector to operate on",
		Pos:      token.Position{Filename: "music/note.go", Line: 12, Column: 1},
	}
	assert.Equal(t, "music/note.go:12:1: error: [empty-selection] no selector to operate on", d.String())

	w := Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        CodeUnknownAnnotation,
		Message:     "unknown annotation @CmBy",
		Suggestions: []string{"@CmpBy"},
	}
	assert.Equal(t, "warning: [unknown-annotation] unknown annotation @CmBy (did you mean @CmpBy?)", w.String())
}

func TestDiagnostics_AddErr(t *testing.T) {
	var d Diagnostics

	pos := token.Position{Filename: "a.go", Line: 3, Column: 2}
	d.AddErr(NewError(CodeDuplicateMarker, pos, "T", "A", "expected at most one @CmpBy marker", nil), CodeGrammar, token.Position{}, "T")
	d.AddErr(errors.New("boom"), CodeLoad, pos, "T")

	require.Len(t, d.Errors, 2)
	assert.Equal(t, CodeDuplicateMarker, d.Errors[0].Code)
	assert.Equal(t, "A", d.Errors[0].Field)
	assert.Equal(t, CodeLoad, d.Errors[1].Code)
	assert.False(t, d.IsValid())
	assert.Error(t, d.Error())
}

func TestDiagnostics_All(t *testing.T) {
	var d Diagnostics
	d.AddWarning(CodeUnresolvedSelector, "w", token.Position{Filename: "a.go", Line: 9, Column: 1}, "T")
	d.AddError(CodeShape, "e", token.Position{Filename: "a.go", Line: 2, Column: 1}, "T", "")
	d.AddInfo("info", "i", token.Position{Filename: "a.go", Line: 5, Column: 1}, "T")

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 5, 9}, []int{all[0].Pos.Line, all[1].Pos.Line, all[2].Pos.Line})
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("planning: %w", NewError(CodeEmptySelection, token.Position{}, "T", "", "no selector to operate on", nil))

	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.NotErrorIs(t, err, ErrShape)

	cause := errors.New("unexpected )")
	wrapped := NewError(CodeGrammar, token.Position{}, "T", "", "invalid @CmpBy", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, ErrGrammar)
	assert.Equal(t, "invalid @CmpBy: unexpected )", wrapped.Error())
}
