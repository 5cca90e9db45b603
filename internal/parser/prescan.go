package parser

import (
	"github.com/wincc-lang/nwcc/internal/ast"
	"github.com/wincc-lang/nwcc/internal/token"
)

// prescan walks the token stream once, registering every function
// signature into the function table before the real parse, so forward
// and mutually recursive calls resolve (spec.md §4.3 "Prescan"). It
// builds no AST nodes and touches no symbol table.
//
// A function declaration is recognized by the pattern
// `(INT | ID) ID LPAREN`, matching spec.md exactly.
func prescan(toks []token.Token, funcs map[string]FuncSig) {
	i := 0
	for i < len(toks)-2 {
		t0, t1, t2 := toks[i], toks[i+1], toks[i+2]
		isTypeStart := t0.Kind == token.INT || t0.Kind == token.ID
		if isTypeStart && t1.Kind == token.ID && t2.Kind == token.LPAREN {
			retType := typeFromToken(t0)
			name := t1.Lexeme
			params, end := scanParamTypes(toks, i+3)
			funcs[name] = FuncSig{ReturnType: retType, Params: params, Variadic: false}
			i = end + 1
			continue
		}
		i++
	}
}

// typeFromToken resolves a type token (INT, or an ID naming
// bool/float/string/void/a user type) without consuming anything; it
// is used by both the prescan (which never advances a real cursor) and
// indirectly mirrors Parser.parseType's mapping.
func typeFromToken(t token.Token) ast.Type {
	if t.Kind == token.INT {
		return ast.Int
	}
	switch t.Lexeme {
	case "bool":
		return ast.Bool
	case "float":
		return ast.Float
	case "string":
		return ast.String
	case "void":
		return ast.Void
	default:
		return ast.Type{Kind: ast.TUser, Name: t.Lexeme}
	}
}

// scanParamTypes scans a parameter list starting at index start
// (just past the opening LPAREN) up to and including its matching
// RPAREN, returning the ordered parameter types and the index of the
// RPAREN token.
func scanParamTypes(toks []token.Token, start int) ([]ast.Type, int) {
	var params []ast.Type
	i := start
	if i < len(toks) && toks[i].Kind == token.RPAREN {
		return nil, i
	}
	for i < len(toks) {
		if toks[i].Kind == token.RPAREN {
			return params, i
		}
		// expect: type-token ID (',' type-token ID)*
		if i+1 < len(toks) {
			params = append(params, typeFromToken(toks[i]))
		}
		i += 2
		if i < len(toks) && toks[i].Kind == token.COMMA {
			i++
		}
	}
	return params, i
}
