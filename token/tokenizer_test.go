package token

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := Tokenize(`"ab\nc"`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, lang.TokStr, toks[0].Tok.Kind)
	assert.Equal(t, "ab\nc", toks[0].Tok.Str)
	assert.Equal(t, lang.Span{Start: 0, End: 7}, toks[0].Span)
}

func TestTokenizeStripsBlockComment(t *testing.T) {
	toks, err := Tokenize(`[ comment ] s:0 1`)
	require.NoError(t, err)

	var kinds []lang.TokenKind
	for _, ti := range toks {
		kinds = append(kinds, ti.Tok.Kind)
	}
	assert.Equal(t, []lang.TokenKind{lang.TokIdn, lang.TokCol, lang.TokInt, lang.TokInt}, kinds)
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize(`"abc`)
	require.Error(t, err)

	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 201, syn.Code())
}

func TestTokenizeUnterminatedEscapeFails(t *testing.T) {
	_, err := Tokenize(`"abc\`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escape sequence")
}

func TestTokenizeUnterminatedCommentFails(t *testing.T) {
	_, err := Tokenize(`[ comment`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment literal")
}

func TestTokenizeNumberLiterals(t *testing.T) {
	toks, err := Tokenize(`5 -7`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, int64(5), toks[0].Tok.Int)
	assert.Equal(t, int64(-7), toks[1].Tok.Int)
}

func TestTokenizeInvalidNumberLiteral(t *testing.T) {
	_, err := Tokenize(`5a`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid number literal")
}

func TestTokenizeIdentifierAndNewline(t *testing.T) {
	toks, err := Tokenize("foo_1\n")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, lang.TokIdn, toks[0].Tok.Kind)
	assert.Equal(t, "foo_1", toks[0].Tok.Str)
	assert.Equal(t, lang.TokEol, toks[1].Tok.Kind)
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := Tokenize("@")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid character")
}

func TestTokenizeAllSingleCharTokens(t *testing.T) {
	toks, err := Tokenize(`~:.$;?=!#`)
	require.NoError(t, err)
	want := []lang.TokenKind{
		lang.TokTil, lang.TokCol, lang.TokDot, lang.TokDol,
		lang.TokSmi, lang.TokQue, lang.TokEql, lang.TokNot, lang.TokHsh,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Tok.Kind)
	}
}
