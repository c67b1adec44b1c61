package selector

import "fmt"

// SyntaxError reports a selector list that matches neither the primary nor
// the legacy form.
type SyntaxError struct {
	Text   string // text that failed to parse
	Offset int    // byte offset into Text
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Text, e.Offset, e.Msg)
}
