package parser

import (
	"fmt"

	"github.com/wincc-lang/nwcc/internal/token"
)

// SyntaxError is spec.md §7's syntax error class: an unexpected token,
// a missing delimiter, or a malformed literal.
type SyntaxError struct {
	Pos     token.Position
	Kind    token.Kind
	Lexeme  string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s (got %s %q)", e.Pos, e.Message, e.Kind, e.Lexeme)
}

// SemanticError is spec.md §7's semantic error class: typing,
// redeclaration, unknown symbol, or arity violations.
type SemanticError struct {
	Pos     token.Position
	Message string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error at %s: %s", e.Pos, e.Message)
}

// bail is the internal unwind signal used by the recursive-descent
// parser: every parse* method may panic(bail{err}) on the first error,
// and Parse recovers it at the top, matching spec.md §4.3 ("Both are
// fatal: parsing stops at the first error").
type bail struct{ err error }
