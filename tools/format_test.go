package tools_test

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRendersLabelAndCallOnSeparateLines(t *testing.T) {
	out, err := tools.FormatString(";loop\ns:0 1\n")
	require.NoError(t, err)
	assert.Equal(t, ";loop\ns:0 1\n", out)
}

func TestFormatNormalizesWhitespaceBetweenArguments(t *testing.T) {
	out, err := tools.FormatString("s:0    1\n")
	require.NoError(t, err)
	assert.Equal(t, "s:0 1\n", out)
}

func TestFormatRendersNestedCalls(t *testing.T) {
	out, err := tools.FormatString("p:a:g:0 1\n")
	require.NoError(t, err)
	assert.Equal(t, "p:a:g:0 1\n", out)
}

func TestFormatRendersZeroArityCallWithoutColon(t *testing.T) {
	out, err := tools.FormatString("w:i\n")
	require.NoError(t, err)
	assert.Equal(t, "w:i\n", out)
}

func TestFormatEscapesSpecialCharactersInStringLiterals(t *testing.T) {
	out, err := tools.FormatString(`w:"a\nb"` + "\n")
	require.NoError(t, err)
	assert.Equal(t, `w:"a\nb"`+"\n", out)
}

func TestFormatReturnsErrorOnUnparsableSource(t *testing.T) {
	_, err := tools.FormatString("p:\n")
	assert.Error(t, err)
}
