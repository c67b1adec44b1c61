// Package selector implements the annotation selector language.
//
// A selector is an access path rooted at the annotated instance:
//
//	Name            member access
//	Inner.Value     nested member access
//	Product()       zero-argument method call
//	Inner.Len()     member access followed by a call
//	"Inner.Value"   string literal, parsed recursively
//
// A list of selectors is written between the parentheses of a type-level
// annotation. The primary grammar is built with parser combinators over the
// go/scanner token stream. When it does not match, the list is parsed again
// in the legacy form with go/parser, which accepts a parenthesized single
// expression or a tuple whose elements are already selector-shaped.
//
// Selectors never embed literals, operators or calls with arguments.
package selector
