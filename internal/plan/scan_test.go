package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/diagnostic"
)

func TestScanFields_DeclarationOrder(t *testing.T) {
	typ := record("Something", nil,
		field("C", marker("CmpBy")),
		field("A"),
		field("B", marker("CmpBy"), marker("HashBy")),
	)

	got, err := ScanFields(typ, "CmpBy")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Selector.String())
	assert.Equal(t, "C", got[0].Field)
	assert.Equal(t, "B", got[1].Selector.String())

	got, err = ScanFields(typ, "HashBy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Selector.String())
}

func TestScanFields_Positional(t *testing.T) {
	typ := record("Pair", nil, field("0"), field("1", marker("CmpBy")))
	typ.Positional = true

	got, err := ScanFields(typ, "CmpBy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Selector.Head().Positional)
	assert.Equal(t, 1, got[0].Selector.Head().Index)
}

func TestScanFields_Duplicate(t *testing.T) {
	typ := record("Something", nil,
		field("A", marker("CmpBy")),
		field("B", marker("CmpBy"), marker("CmpBy")),
	)

	_, err := ScanFields(typ, "CmpBy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrDuplicateMarker))

	var e *diagnostic.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "B", e.Field)
	assert.Contains(t, e.Message, "expected at most one @CmpBy marker")
}

func TestScanFields_MarkerWithArguments(t *testing.T) {
	typ := record("Something", nil, field("A", attach("CmpBy", "Other")))

	_, err := ScanFields(typ, "CmpBy")
	require.ErrorIs(t, err, diagnostic.ErrGrammar)

	typ = record("Something", nil, field("A", attach("CmpBy", " ")))

	got, err := ScanFields(typ, "CmpBy")
	require.NoError(t, err)
	assert.Len(t, got, 1, "empty parentheses are a bare marker")
}

func TestScanFields_VariantHasNoFields(t *testing.T) {
	got, err := ScanFields(sealed("Shape"), "CmpBy")
	require.NoError(t, err)
	assert.Nil(t, got)

	unsupported := &analyze.TypeInfo{Kind: analyze.TypeKindUnsupported}
	got, err = ScanFields(unsupported, "CmpBy")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCaseOrder(t *testing.T) {
	at := pos()

	got := caseOrder([]Entry{SelectorEntry{Pos: pos()}, FieldsEntry{Pos: at}})
	require.Len(t, got, 1)
	assert.True(t, got[0].CaseOrder)
	assert.True(t, got[0].Selector.IsMarker())
	assert.Equal(t, at, got[0].Pos)

	assert.Nil(t, caseOrder([]Entry{SelectorEntry{Pos: pos()}}))
	assert.Nil(t, caseOrder(nil))
}
