package interp_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/scriptcore/interp"
	"github.com/lookbusy1344/scriptcore/parse"
	"github.com/lookbusy1344/scriptcore/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run tokenizes, parses, and interprets src, returning everything
// written to stdout and the slot table for post-hoc assertions.
func run(t *testing.T, src string) (string, *interp.Machine, error) {
	t.Helper()

	toks, err := token.Tokenize(src)
	require.NoError(t, err)

	labels, instrs, err := parse.Parse(toks)
	require.NoError(t, err)

	var out strings.Builder
	m := interp.New(labels, instrs, func(s string) error {
		out.WriteString(s)
		return nil
	}, nil, func(int) {})

	err = m.Interpret()
	return out.String(), m, err
}

func TestScenarioPrintSlot(t *testing.T) {
	out, _, err := run(t, "s:0 \"hi\"\np:g:0\n")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestScenarioAddAndPrint(t *testing.T) {
	out, _, err := run(t, "s:1 5\ns:2 7\np:a:.1 .2\n")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)
}

func TestScenarioLoop(t *testing.T) {
	src := "s:0 0\n; loop\ns:0 a:g:0 1\n?:=:g:0 10 j:\"end\"\nj:\"loop\"\n; end\np:\"done\"\n"
	out, m, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "done\n", out)
	assert.Equal(t, int64(10), m.Slots[0].Int)
}

func TestScenarioAddTypeMismatch(t *testing.T) {
	_, _, err := run(t, `a:"x" 1`+"\n")
	require.Error(t, err)

	var ierr *interp.InterpreterError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 400, ierr.Code())
}

func TestScenarioCatchErrorCapturesCode(t *testing.T) {
	src := `#:"h" n:"abc"` + "\n; h\np:g:-1\n"
	out, _, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "403\n", out)
}

func TestScenarioThrowErrorHaltsExecution(t *testing.T) {
	out, _, err := run(t, "!:42\np:\"unreached\"\n")
	require.Error(t, err)
	assert.NotContains(t, out, "unreached")

	var ierr *interp.InterpreterError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 400, ierr.Code())
	assert.Equal(t, "42", ierr.Err.Text)
}

func TestGetOnUnsetSlotReturnsNoneNotError(t *testing.T) {
	out, _, err := run(t, "p:g:99\n")
	require.NoError(t, err)
	assert.Equal(t, "None\n", out)
}

func TestSlotPersistsUntilOverwritten(t *testing.T) {
	out, _, err := run(t, "s:3 \"a\"\np:g:3\ns:3 \"b\"\np:g:3\n")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestIfShortCircuitsFalseBranch(t *testing.T) {
	out, _, err := run(t, "?:0 p:\"nope\"\np:\"after\"\n")
	require.NoError(t, err)
	assert.Equal(t, "after\n", out)
}

func TestFunJumpReturnsValueToCaller(t *testing.T) {
	src := "s:0 5\ns:1 f:\"double\"\np:g:1\nj:\"skip\"\n; double\nr:a:g:0 g:0\n; skip\n"
	out, _, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestEmptySlotFindsFirstFreeSlot(t *testing.T) {
	out, _, err := run(t, "s:0 1\ns:1 2\np:~\n")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestConvertCharRoundTrip(t *testing.T) {
	out, _, err := run(t, `p:c:"A"`+"\n"+`p:c:65`+"\n")
	require.NoError(t, err)
	assert.Equal(t, "65\nA\n", out)
}

func TestExtractOutOfRangeYieldsEmptyString(t *testing.T) {
	out, _, err := run(t, `p:x:"ab" 99`+"\n")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestTextNumberRoundTrip(t *testing.T) {
	out, _, err := run(t, `p:t:n:"123"`+"\n")
	require.NoError(t, err)
	assert.Equal(t, "123\n", out)
}
