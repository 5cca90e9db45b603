// Package adapter normalizes the lexer's raw token tuples into the
// uniform token.Token records the parser consumes (spec.md §4.2).
package adapter

import (
	"fmt"
	"strconv"

	"github.com/wincc-lang/nwcc/internal/lexer"
	"github.com/wincc-lang/nwcc/internal/token"
)

// Error reports a raw token the adapter cannot map to a parser kind
// (an operator outside the fixed tag set, or unmapped punctuation).
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("adapter error at %s: %s", e.Pos, e.Message)
}

var punctKinds = map[string]token.Kind{
	";": token.SEMI,
	"(": token.LPAREN,
	")": token.RPAREN,
	"{": token.LBRACE,
	"}": token.RBRACE,
	",": token.COMMA,
}

var opKinds = map[string]token.Kind{
	"==": token.EQ, "!=": token.NEQ, "<=": token.LE, ">=": token.GE,
	"&&": token.AND, "||": token.OR,
	"++": token.INC, "--": token.DEC,
	"+=": token.PLUSEQ, "-=": token.MINUSEQ, "*=": token.STAREQ, "/=": token.SLASHEQ,
	"=": token.ASSIGN, "+": token.PLUS, "-": token.MINUS, "*": token.STAR,
	"/": token.SLASH, "<": token.LT, ">": token.GT, "!": token.NOT, "%": token.PERC,
}

// Adapt converts a raw token stream into parser tokens, appending a
// trailing EOF token.
func Adapt(raws []lexer.Raw) ([]token.Token, error) {
	out := make([]token.Token, 0, len(raws)+1)

	for _, r := range raws {
		switch r.Class {
		case lexer.ClassKeyword:
			kind, ok := token.Keywords[r.Lexeme]
			if !ok {
				return nil, &Error{Pos: r.Pos, Message: fmt.Sprintf("unrecognized keyword %q", r.Lexeme)}
			}
			out = append(out, token.Token{Kind: kind, Lexeme: r.Lexeme, Pos: r.Pos})

		case lexer.ClassIdent:
			out = append(out, token.Token{Kind: token.ID, Lexeme: r.Lexeme, Pos: r.Pos})

		case lexer.ClassPunct:
			kind, ok := punctKinds[r.Lexeme]
			if !ok {
				return nil, &Error{Pos: r.Pos, Message: fmt.Sprintf("unmapped punctuation %q", r.Lexeme)}
			}
			out = append(out, token.Token{Kind: kind, Lexeme: r.Lexeme, Pos: r.Pos})

		case lexer.ClassOperator:
			kind, ok := opKinds[r.Lexeme]
			if !ok {
				return nil, &Error{Pos: r.Pos, Message: fmt.Sprintf("unsupported operator %q", r.Lexeme)}
			}
			out = append(out, token.Token{Kind: kind, Lexeme: r.Lexeme, Pos: r.Pos})

		case lexer.ClassNumber:
			var lit any
			if containsDot(r.Lexeme) {
				if v, err := strconv.ParseFloat(r.Lexeme, 64); err == nil {
					lit = v
				}
			} else {
				if v, err := strconv.ParseInt(r.Lexeme, 10, 64); err == nil {
					lit = v
				}
			}
			out = append(out, token.Token{Kind: token.NUM, Lexeme: r.Lexeme, Literal: lit, Pos: r.Pos})

		case lexer.ClassString:
			// strip the enclosing quotes; escapes pass through
			// verbatim (spec.md §4.2, §9 "Escape handling").
			val := r.Lexeme
			if len(val) >= 2 {
				val = val[1 : len(val)-1]
			}
			out = append(out, token.Token{Kind: token.STRING, Lexeme: r.Lexeme, Literal: val, Pos: r.Pos})

		default:
			return nil, &Error{Pos: r.Pos, Message: "unknown raw token class"}
		}
	}

	eofPos := token.Position{Line: 1, Col: 1}
	if len(out) > 0 {
		eofPos = out[len(out)-1].Pos
	}
	out = append(out, token.Token{Kind: token.EOF, Pos: eofPos})
	return out, nil
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}
