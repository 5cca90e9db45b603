package irgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wincc-lang/nwcc/internal/adapter"
	"github.com/wincc-lang/nwcc/internal/lexer"
	"github.com/wincc-lang/nwcc/internal/parser"
)

func generate(t *testing.T, src string) *Program {
	t.Helper()
	raws, err := lexer.New(src).Lex()
	require.NoError(t, err)
	toks, err := adapter.Adapt(raws)
	require.NoError(t, err)
	prog, err := parser.New(toks).Parse()
	require.NoError(t, err)
	return Generate(prog)
}

func instrStrings(ir *Program) []string {
	out := make([]string, len(ir.Instrs))
	for i, instr := range ir.Instrs {
		out[i] = instr.String()
	}
	return out
}

func TestGenerateEmptyMain(t *testing.T) {
	ir := generate(t, "int main() { return 0; }")
	assert.Equal(t, []string{
		"func main()",
		"return 0",
		"endfunc main",
	}, instrStrings(ir))
}

func TestGenerateArithmeticAllocatesOneTempPerBinOp(t *testing.T) {
	ir := generate(t, "int main() { int x = 1 + 2 * 3; return x; }")
	strs := instrStrings(ir)
	assert.Contains(t, strs, "t0 = 2 * 3")
	assert.Contains(t, strs, "t1 = 1 + t0")
	assert.Contains(t, strs, "x = t1")
}

func TestGenerateIfElseLowering(t *testing.T) {
	ir := generate(t, `
		int main() {
			int x = 1;
			if (x == 1) {
				return 1;
			} else {
				return 0;
			}
		}
	`)
	// spec.md §4.4's if/else template: IfFalseGoto(else), Label(then),
	// then-block, Goto(end), Label(else), else-block, Label(end).
	var kinds []string
	for _, instr := range ir.Instrs {
		switch instr.(type) {
		case IfFalseGoto:
			kinds = append(kinds, "ifFalseGoto")
		case Label:
			kinds = append(kinds, "label")
		case Goto:
			kinds = append(kinds, "goto")
		case Return:
			kinds = append(kinds, "return")
		}
	}
	// Skip FuncBegin/FuncEnd (not Label) and the leading decl's Assign.
	assert.Equal(t,
		[]string{"ifFalseGoto", "label", "return", "goto", "label", "return", "label"},
		kinds,
	)
}

func TestGenerateWhileLoopBackEdge(t *testing.T) {
	ir := generate(t, `
		int main() {
			int i = 0;
			while (i < 10) {
				i = i + 1;
			}
			return i;
		}
	`)
	strs := instrStrings(ir)
	require.Contains(t, strs, "L0:")
	assert.Contains(t, strs, "goto L0")
}

func TestGenerateForLoopStepBeforeBackEdge(t *testing.T) {
	ir := generate(t, `
		int main() {
			int sum = 0;
			for (int i = 0; i < 5; i = i + 1) {
				sum = sum + i;
			}
			return sum;
		}
	`)
	stepIdx, gotoIdx := -1, -1
	for i, instr := range ir.Instrs {
		if a, ok := instr.(Assign); ok && a.Dest == "i" {
			stepIdx = i // the last Assign to 'i' is the step (init runs once, earlier)
		}
		if _, ok := instr.(Goto); ok {
			gotoIdx = i
		}
	}
	require.NotEqual(t, -1, stepIdx)
	require.NotEqual(t, -1, gotoIdx)
	assert.Less(t, stepIdx, gotoIdx, "the step must lower before the loop's back edge")
}

func TestGeneratePrintfEmitsParamsThenCall(t *testing.T) {
	ir := generate(t, `
		int main() {
			int x = 5;
			printf("x = %d", x);
			return 0;
		}
	`)
	strs := instrStrings(ir)
	assert.Contains(t, strs, "param str0")
	assert.Contains(t, strs, "param x")
	foundCall := false
	for _, s := range strs {
		if s == "t0 = call printf(str0, x)" {
			foundCall = true
		}
	}
	assert.True(t, foundCall)
}

func TestStringTablePreservesInsertionOrder(t *testing.T) {
	ir := generate(t, `
		int main() {
			printf("a");
			printf("b");
			printf("a");
			return 0;
		}
	`)
	entries := ir.Strings.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Value)
	assert.Equal(t, "str0", entries[0].Label)
	assert.Equal(t, "b", entries[1].Value)
	assert.Equal(t, "str1", entries[1].Label)
}
