package diagnostic

import (
	"errors"
	"go/token"
	"strings"
)

// Sentinel errors for the generation-time error taxonomy.
var (
	// ErrGrammar indicates an annotation that is not a selector list.
	ErrGrammar = errors.New("cmpby: invalid annotation")
	// ErrShape indicates an annotated type that is neither a record nor a variant.
	ErrShape = errors.New("cmpby: unsupported type shape")
	// ErrDuplicateMarker indicates a field marked more than once.
	ErrDuplicateMarker = errors.New("cmpby: duplicate field marker")
	// ErrEmptySelection indicates that no selector is left to operate on.
	ErrEmptySelection = errors.New("cmpby: no selector")
	// ErrConflict indicates generators that would emit the same methods.
	ErrConflict = errors.New("cmpby: conflicting annotations")
)

var sentinels = map[string]error{
	CodeGrammar:         ErrGrammar,
	CodeShape:           ErrShape,
	CodeDuplicateMarker: ErrDuplicateMarker,
	CodeEmptySelection:  ErrEmptySelection,
	CodeConflict:        ErrConflict,
}

// Error is a generation failure tied to a source location.
type Error struct {
	Code     string
	Pos      token.Position
	TypeName string
	Field    string
	Message  string
	Cause    error
}

// NewError creates a new Error.
func NewError(code string, pos token.Position, typeName, field, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Pos:      pos,
		TypeName: typeName,
		Field:    field,
		Message:  message,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel error of e's code.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]

	return ok && target == sentinel
}

// Diagnostic converts e into an error diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return Diagnostic{
		Severity: DiagnosticError,
		Code:     e.Code,
		Message:  msg,
		Pos:      e.Pos,
		TypeName: e.TypeName,
		Field:    e.Field,
	}
}
