package parse_test

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/lang"
	"github.com/lookbusy1344/scriptcore/parse"
	"github.com/lookbusy1344/scriptcore/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, src string) []lang.TokenInfo {
	t.Helper()
	toks, err := token.Tokenize(src)
	require.NoError(t, err)
	return toks
}

func TestParseLabelAlreadySet(t *testing.T) {
	toks := mustTokenize(t, "; L\n; L\n")
	_, _, err := parse.Parse(toks)
	require.Error(t, err)

	var perr *parse.ParseErrorInfo
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 301, perr.Code())
	assert.Equal(t, 0, perr.Err.PrevLine)
}

func TestParseNotEnoughArgument(t *testing.T) {
	toks := mustTokenize(t, "s:\n")
	_, _, err := parse.Parse(toks)
	require.Error(t, err)

	var perr *parse.ParseErrorInfo
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 304, perr.Code())
	assert.Equal(t, 2, perr.Err.Expected)
	assert.Equal(t, 0, perr.Err.Got)
}

func TestParseUnknownFunctionName(t *testing.T) {
	toks := mustTokenize(t, "q:1\n")
	_, _, err := parse.Parse(toks)
	require.Error(t, err)

	var perr *parse.ParseErrorInfo
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 305, perr.Code())
}

func TestParseLabelUnexpectedTokenWithNote(t *testing.T) {
	toks := mustTokenize(t, `; "L"` + "\n")
	_, _, err := parse.Parse(toks)
	require.Error(t, err)

	var perr *parse.ParseErrorInfo
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 302, perr.Code())
	assert.Contains(t, perr.Note, ";L")
}

func TestParseLabelsAreUniqueAndInRange(t *testing.T) {
	toks := mustTokenize(t, "s:0 0\n; loop\ns:0 a:g:0 1\n?:=:g:0 10 j:\"end\"\nj:\"loop\"\n; end\np:\"done\"\n")
	labels, instrs, err := parse.Parse(toks)
	require.NoError(t, err)

	for _, idx := range labels {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(instrs))
	}
	seen := map[int]bool{}
	for _, idx := range labels {
		assert.False(t, seen[idx], "label indices must be unique")
		seen[idx] = true
	}
}

func TestParseEmptyLinesAreDropped(t *testing.T) {
	toks := mustTokenize(t, "\n\ns:0 1\n\n\n")
	_, instrs, err := parse.Parse(toks)
	require.NoError(t, err)
	assert.Len(t, instrs, 1)
}

func TestParseDotSugarIsGet(t *testing.T) {
	toks := mustTokenize(t, "p:.5\n")
	_, instrs, err := parse.Parse(toks)
	require.NoError(t, err)
	require.Len(t, instrs, 1)

	call := instrs[0].Instr.Call
	require.Equal(t, lang.FunPrint, call.Fun)
	inner := call.Args[0].Call
	require.Equal(t, lang.FunGet, inner.Fun)
	assert.Equal(t, lang.Int(5), inner.Args[0].Literal)
}

func TestParseNestedCallConsumesCorrectTokens(t *testing.T) {
	toks := mustTokenize(t, "s:1 a:g:0 1\n")
	_, instrs, err := parse.Parse(toks)
	require.NoError(t, err)
	require.Len(t, instrs, 1)

	setCall := instrs[0].Instr.Call
	require.Equal(t, lang.FunSet, setCall.Fun)
	addCall := setCall.Args[1].Call
	require.Equal(t, lang.FunAdd, addCall.Fun)
	require.Equal(t, lang.FunGet, addCall.Args[0].Call.Fun)
	assert.Equal(t, lang.Int(1), addCall.Args[1].Literal)
}
