// Package codegen lowers three-address IR into NASM assembly text for
// the Windows x86-64 ABI (spec.md §4.5), almost line-for-line grounded
// on original_source/asm_generator.py's per-instruction dispatch, with
// two deliberate extensions documented in DESIGN.md: '&&'/'||' lower to
// bitwise and/or (operands are always 0/1 bools by the type checker),
// and unary '+' lowers as an identity move. Neither has a case in the
// literal source.
package codegen

import (
	"fmt"
	"strings"

	"github.com/wincc-lang/nwcc/internal/irgen"
)

type irInstr = irgen.Instr

// segment is one contiguous run of instructions that share a stack
// frame: either a real function body bracketed by FuncBegin/FuncEnd,
// or — for IR the grammar allows but spec.md §4.5 never describes, top
// level statements outside any function — a synthetic frame so
// generation still produces well-formed (if unreachable) NASM instead
// of panicking.
type segment struct {
	label  string // NASM label; empty for the implicit entry wrapper
	params []string
	body   []irInstr
	synth  bool
}

// Generate renders a full program's NASM source.
func Generate(prog *irgen.Program) string {
	segs := splitSegments(prog.Instrs)

	var b strings.Builder
	writeHeader(&b, prog.Strings, hasMain(segs))
	for _, seg := range segs {
		genSegment(&b, seg)
	}
	return b.String()
}

func hasMain(segs []segment) bool {
	for _, s := range segs {
		if !s.synth && s.label == "main" {
			return true
		}
	}
	return false
}

func splitSegments(instrs []irInstr) []segment {
	var segs []segment
	var loose []irInstr
	flushLoose := func() {
		if len(loose) > 0 {
			segs = append(segs, segment{synth: true, body: loose})
			loose = nil
		}
	}

	i := 0
	for i < len(instrs) {
		begin, ok := instrs[i].(irgen.FuncBegin)
		if !ok {
			loose = append(loose, instrs[i])
			i++
			continue
		}
		flushLoose()
		j := i + 1
		var body []irInstr
		for j < len(instrs) {
			if end, ok := instrs[j].(irgen.FuncEnd); ok && end.Name == begin.Name {
				break
			}
			body = append(body, instrs[j])
			j++
		}
		segs = append(segs, segment{label: begin.Name, params: begin.Params, body: body})
		i = j + 1
	}
	flushLoose()
	return segs
}

// operandsOf returns every slot-candidate operand an instruction
// touches, in the order spec.md §4.5's lowering table reads them.
func operandsOf(instr irInstr) []string {
	switch i := instr.(type) {
	case irgen.Assign:
		return []string{i.Dest, i.Src}
	case irgen.BinOp:
		return []string{i.Dest, i.Lhs, i.Rhs}
	case irgen.UnaryOp:
		return []string{i.Dest, i.Operand}
	case irgen.IfFalseGoto:
		return []string{i.Cond}
	case irgen.IfGoto:
		return []string{i.Cond}
	case irgen.Param:
		return []string{i.Value}
	case irgen.Call:
		ops := append([]string{i.Dest}, i.Args...)
		return ops
	case irgen.Return:
		if i.HasValue {
			return []string{i.Value}
		}
		return nil
	default:
		return nil
	}
}

func writeHeader(b *strings.Builder, strs *irgen.StringTable, main bool) {
	fmt.Fprintln(b, "bits 64")
	fmt.Fprintln(b, "default rel")
	fmt.Fprintln(b)
	if strs.Len() > 0 {
		fmt.Fprintln(b, "section .data")
		for _, e := range strs.Entries() {
			fmt.Fprintf(b, "    %s: db %s, 0\n", e.Label, escapeDataString(e.Value))
		}
		fmt.Fprintln(b)
	}
	fmt.Fprintln(b, "section .text")
	fmt.Fprintln(b, "extern printf, scanf, exit")
	if main {
		fmt.Fprintln(b, "global main")
	}
	fmt.Fprintln(b)
}

// escapeDataString renders a Go string as a NASM db operand, replacing
// the literal two-character sequences \n and \t with their own numeric
// byte. Interned string values carry these sequences verbatim —
// internal/lexer's matchString and internal/adapter.Adapt both pass
// escapes through unmodified — so the text reaching here still holds a
// backslash followed by 'n' or 't', not a real control byte. This
// mirrors original_source/asm_generator.py's own
// `value.replace('\\n', '", 10, "').replace('\\t', '", 9, "')` wrapped
// in an outer quote pair (spec.md §4.5 "Data section"): a string
// ending in \n therefore closes with a trailing empty `""` segment
// rather than dropping it, exactly as the original's two sequential
// whole-string replaces would.
func escapeDataString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 'n' {
			b.WriteString(`", 10, "`)
			i++
			continue
		}
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 't' {
			b.WriteString(`", 9, "`)
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

