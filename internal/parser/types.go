package parser

import "github.com/wincc-lang/nwcc/internal/ast"

// FuncSig is one function table entry (spec.md §3).
type FuncSig struct {
	ReturnType ast.Type
	Params     []ast.Type
	Variadic   bool
}

// builtins seeds the function table before the prescan runs (spec.md
// §4.3 "Built-ins").
func builtins() map[string]FuncSig {
	return map[string]FuncSig{
		"printf": {ReturnType: ast.Int, Variadic: true},
		"scanf":  {ReturnType: ast.Int, Variadic: true},
	}
}
