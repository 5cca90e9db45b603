package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wincc-lang/nwcc/internal/lexer"
	"github.com/wincc-lang/nwcc/internal/token"
)

func adapt(t *testing.T, src string) []token.Token {
	t.Helper()
	raws, err := lexer.New(src).Lex()
	require.NoError(t, err)
	toks, err := Adapt(raws)
	require.NoError(t, err)
	return toks
}

func TestAdaptAppendsTrailingEOF(t *testing.T) {
	toks := adapt(t, "x")
	require.Len(t, toks, 2)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestAdaptKeywordRouting(t *testing.T) {
	toks := adapt(t, "if x return")
	require.Len(t, toks, 4)
	assert.Equal(t, token.IF, toks[0].Kind)
	assert.Equal(t, token.ID, toks[1].Kind)
	assert.Equal(t, token.RETURN, toks[2].Kind)
}

func TestAdaptIntLiteral(t *testing.T) {
	toks := adapt(t, "42")
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUM, toks[0].Kind)
	assert.Equal(t, int64(42), toks[0].Literal)
}

func TestAdaptFloatLiteral(t *testing.T) {
	toks := adapt(t, "3.5")
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUM, toks[0].Kind)
	assert.Equal(t, 3.5, toks[0].Literal)
}

func TestAdaptStringLiteralStripsQuotes(t *testing.T) {
	toks := adapt(t, `"hi there"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hi there", toks[0].Literal)
}

func TestAdaptOperators(t *testing.T) {
	toks := adapt(t, "a == b && c")
	require.Len(t, toks, 6)
	assert.Equal(t, token.EQ, toks[1].Kind)
	assert.Equal(t, token.AND, toks[3].Kind)
}

func TestAdaptPunctuation(t *testing.T) {
	toks := adapt(t, "f(a, b);")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t,
		[]token.Kind{token.ID, token.LPAREN, token.ID, token.COMMA, token.ID, token.RPAREN, token.SEMI, token.EOF},
		kinds,
	)
}
