package codegen

import (
	"fmt"
	"strings"

	"github.com/wincc-lang/nwcc/internal/irgen"
)

// argRegs is the Windows x64 integer argument convention: the first
// four arguments travel in registers, everything past that is simply
// not passed (Open Question decision 4 in DESIGN.md — kept as a documented
// limitation rather than adding a stack-argument path the source
// never had).
var argRegs = []string{"rcx", "rdx", "r8", "r9"}

var setcc = map[string]string{
	"<":  "setl",
	">":  "setg",
	"<=": "setle",
	">=": "setge",
	"==": "sete",
	"!=": "setne",
}

func genSegment(b *strings.Builder, seg segment) {
	f := precount(seg.params, seg.body)
	endLabel := ".end_" + seg.label
	if seg.synth {
		endLabel = ".end_toplevel"
	}

	if !seg.synth {
		fmt.Fprintf(b, "%s:\n", seg.label)
	}
	fmt.Fprintln(b, "    push rbp")
	fmt.Fprintln(b, "    mov rbp, rsp")
	fmt.Fprintf(b, "    sub rsp, %d\n", f.size())

	for i, p := range seg.params {
		if i >= len(argRegs) {
			break // slot was still allocated by precount; left unpopulated
		}
		fmt.Fprintf(b, "    mov [rbp-%d], %s\n", f.slot(p), argRegs[i])
	}

	for _, instr := range seg.body {
		lowerInstr(b, instr, f, endLabel)
	}

	fmt.Fprintf(b, "%s:\n", endLabel)
	fmt.Fprintln(b, "    mov rsp, rbp")
	fmt.Fprintln(b, "    pop rbp")
	fmt.Fprintln(b, "    ret")
	fmt.Fprintln(b)
}

// load emits code to move operand's value into reg: an immediate move
// for a numeric literal, a lea for an interned string label, or a load
// from the operand's stack slot otherwise.
func load(b *strings.Builder, reg, operand string, f *frame) {
	switch {
	case isNumericLiteral(operand):
		fmt.Fprintf(b, "    mov %s, %s\n", reg, intImmediate(operand))
	case isStringLabel(operand):
		fmt.Fprintf(b, "    lea %s, [%s]\n", reg, operand)
	default:
		fmt.Fprintf(b, "    mov %s, [rbp-%d]\n", reg, f.slot(operand))
	}
}

func store(b *strings.Builder, reg, dest string, f *frame) {
	fmt.Fprintf(b, "    mov [rbp-%d], %s\n", f.slot(dest), reg)
}

func lowerInstr(b *strings.Builder, instr irInstr, f *frame, endLabel string) {
	switch i := instr.(type) {
	case irgen.Label:
		// IR labels become NASM local labels ('.'-prefixed) so they stay
		// scoped to the function label, like endLabel.
		fmt.Fprintf(b, ".%s:\n", i.Name)

	case irgen.Assign:
		load(b, "rax", i.Src, f)
		store(b, "rax", i.Dest, f)

	case irgen.BinOp:
		lowerBinOp(b, i, f)

	case irgen.UnaryOp:
		lowerUnaryOp(b, i, f)

	case irgen.Goto:
		fmt.Fprintf(b, "    jmp .%s\n", i.Label)

	case irgen.IfFalseGoto:
		load(b, "rax", i.Cond, f)
		fmt.Fprintln(b, "    cmp rax, 0")
		fmt.Fprintf(b, "    je .%s\n", i.Label)

	case irgen.IfGoto:
		load(b, "rax", i.Cond, f)
		fmt.Fprintln(b, "    cmp rax, 0")
		fmt.Fprintf(b, "    jne .%s\n", i.Label)

	case irgen.Param:
		// Call.Args already carries the full argument list in order;
		// Param exists in the IR for the textual trace (spec.md §6.2)
		// and needs no lowering of its own.

	case irgen.Call:
		lowerCall(b, i, f)

	case irgen.Return:
		if i.HasValue {
			load(b, "rax", i.Value, f)
		}
		fmt.Fprintf(b, "    jmp %s\n", endLabel)

	default:
		panic(fmt.Sprintf("codegen: unhandled instruction %T", instr))
	}
}

func lowerBinOp(b *strings.Builder, i irgen.BinOp, f *frame) {
	load(b, "rax", i.Lhs, f)
	load(b, "rbx", i.Rhs, f)

	switch i.Op {
	case "+":
		fmt.Fprintln(b, "    add rax, rbx")
	case "-":
		fmt.Fprintln(b, "    sub rax, rbx")
	case "*":
		fmt.Fprintln(b, "    imul rax, rbx")
	case "/":
		fmt.Fprintln(b, "    xor rdx, rdx")
		fmt.Fprintln(b, "    idiv rbx")
	case "%":
		fmt.Fprintln(b, "    xor rdx, rdx")
		fmt.Fprintln(b, "    idiv rbx")
		fmt.Fprintln(b, "    mov rax, rdx")
	case "&&":
		// Extension: original_source/asm_generator.py's visit_binop has
		// no '&&' case. Operands are always 0/1 (bool-typed by the
		// checker), so plain bitwise and reproduces logical and.
		fmt.Fprintln(b, "    and rax, rbx")
	case "||":
		// Same extension for '||'; see DESIGN.md.
		fmt.Fprintln(b, "    or rax, rbx")
	default:
		set, ok := setcc[i.Op]
		if !ok {
			panic("codegen: unmapped BinOp operator " + i.Op)
		}
		fmt.Fprintln(b, "    cmp rax, rbx")
		fmt.Fprintf(b, "    %s al\n", set)
		fmt.Fprintln(b, "    movzx rax, al")
	}

	store(b, "rax", i.Dest, f)
}

func lowerUnaryOp(b *strings.Builder, i irgen.UnaryOp, f *frame) {
	load(b, "rax", i.Operand, f)

	switch i.Op {
	case "-":
		fmt.Fprintln(b, "    neg rax")
	case "+":
		// Extension: the literal source has no unary '+' case either;
		// it is the identity operation.
	case "!":
		fmt.Fprintln(b, "    cmp rax, 0")
		fmt.Fprintln(b, "    sete al")
		fmt.Fprintln(b, "    movzx rax, al")
	default:
		panic("codegen: unmapped UnaryOp operator " + i.Op)
	}

	store(b, "rax", i.Dest, f)
}

func lowerCall(b *strings.Builder, i irgen.Call, f *frame) {
	fmt.Fprintln(b, "    sub rsp, 32")
	for idx, arg := range i.Args {
		if idx >= len(argRegs) {
			break
		}
		load(b, argRegs[idx], arg, f)
	}
	fmt.Fprintf(b, "    call %s\n", i.Func)
	fmt.Fprintln(b, "    add rsp, 32")
	if i.Dest != "" {
		store(b, "rax", i.Dest, f)
	}
}
