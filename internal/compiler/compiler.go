// Package compiler wires the four fixed stages — lex, adapt, parse,
// generate — into the single pipeline spec.md §1 describes, mirroring
// original_source/main.py's compile_file and the teacher's
// main/main.go top-level orchestration.
package compiler

import (
	"fmt"

	"github.com/wincc-lang/nwcc/internal/adapter"
	"github.com/wincc-lang/nwcc/internal/ast"
	"github.com/wincc-lang/nwcc/internal/codegen"
	"github.com/wincc-lang/nwcc/internal/irgen"
	"github.com/wincc-lang/nwcc/internal/lexer"
	"github.com/wincc-lang/nwcc/internal/parser"
	"github.com/wincc-lang/nwcc/internal/token"
)

// Result exposes every stage's output so a driver can print
// intermediate artifacts (`--show-ir`, `--show-asm`) without
// recompiling.
type Result struct {
	Raws   []lexer.Raw
	Tokens []token.Token
	AST    *ast.Program
	IR     *irgen.Program
	ASM    string
}

// Stage names a pipeline phase, for error reporting and driver banners.
type Stage string

const (
	StageLex    Stage = "lex"
	StageAdapt  Stage = "adapt"
	StageParse  Stage = "parse"
	StageIRGen  Stage = "irgen"
	StageCodegen Stage = "codegen"
)

// Error wraps a pipeline failure with the stage it occurred in.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Compile runs the full pipeline over source text. It stops at the
// first stage to fail (spec.md §7: "fatal on the first error"), so
// Result is only ever fully populated on success — a caller that wants
// partial output (e.g. tokens from a source file with a later parse
// error) should call the stages directly, as internal/repldbg does.
func Compile(source string) (*Result, error) {
	raws, err := lexer.New(source).Lex()
	if err != nil {
		return nil, &Error{Stage: StageLex, Err: err}
	}

	toks, err := adapter.Adapt(raws)
	if err != nil {
		return nil, &Error{Stage: StageAdapt, Err: err}
	}

	prog, err := parser.New(toks).Parse()
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}

	ir := irgen.Generate(prog)
	asm := codegen.Generate(ir)

	return &Result{
		Raws:   raws,
		Tokens: toks,
		AST:    prog,
		IR:     ir,
		ASM:    asm,
	}, nil
}
