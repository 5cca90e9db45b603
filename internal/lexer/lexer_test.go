package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []Raw {
	t.Helper()
	raws, err := New(src).Lex()
	require.NoError(t, err)
	return raws
}

func TestLexArithmetic(t *testing.T) {
	raws := lex(t, "123 + 2 - 12")
	require.Len(t, raws, 5)
	assert.Equal(t, Raw{Class: ClassNumber, Lexeme: "123", Pos: raws[0].Pos}, raws[0])
	assert.Equal(t, ClassOperator, raws[1].Class)
	assert.Equal(t, "+", raws[1].Lexeme)
	assert.Equal(t, "2", raws[2].Lexeme)
	assert.Equal(t, "-", raws[3].Lexeme)
	assert.Equal(t, "12", raws[4].Lexeme)
}

func TestLexKeywordVsIdent(t *testing.T) {
	raws := lex(t, "if ifx while x")
	require.Len(t, raws, 4)
	assert.Equal(t, ClassKeyword, raws[0].Class)
	assert.Equal(t, "if", raws[0].Lexeme)
	assert.Equal(t, ClassIdent, raws[1].Class)
	assert.Equal(t, "ifx", raws[1].Lexeme)
	assert.Equal(t, ClassKeyword, raws[2].Class)
	assert.Equal(t, ClassIdent, raws[3].Class)
}

func TestLexMultiCharOperatorsBeforeSingleChar(t *testing.T) {
	raws := lex(t, "a == b != c <= d && e")
	var lexemes []string
	for _, r := range raws {
		if r.Class == ClassOperator {
			lexemes = append(lexemes, r.Lexeme)
		}
	}
	assert.Equal(t, []string{"==", "!=", "<=", "&&"}, lexemes)
}

func TestLexFloatNumber(t *testing.T) {
	raws := lex(t, "3.14")
	require.Len(t, raws, 1)
	assert.Equal(t, "3.14", raws[0].Lexeme)
	assert.Equal(t, ClassNumber, raws[0].Class)
}

func TestLexStringWithEscapes(t *testing.T) {
	raws := lex(t, `"hello\nworld"`)
	require.Len(t, raws, 1)
	assert.Equal(t, ClassString, raws[0].Class)
	assert.Equal(t, `"hello\nworld"`, raws[0].Lexeme)
}

func TestLexLineAndBlockComments(t *testing.T) {
	raws := lex(t, "1 // trailing comment\n/* block\ncomment */ 2")
	require.Len(t, raws, 2)
	assert.Equal(t, "1", raws[0].Lexeme)
	assert.Equal(t, "2", raws[1].Lexeme)
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, err := New("1 /* never closed").Lex()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated block comment")
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := New(`"never closed`).Lex()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string literal")
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := New("1 @ 2").Lex()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestLexPositionsAdvanceAcrossLines(t *testing.T) {
	raws := lex(t, "a\nb")
	require.Len(t, raws, 2)
	assert.Equal(t, 1, raws[0].Pos.Line)
	assert.Equal(t, 2, raws[1].Pos.Line)
}
