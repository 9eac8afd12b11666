package tools_test

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildXRefFindsDefinitionAndJumpReference(t *testing.T) {
	src := "j:\"loop\"\n;loop\np:1\n"

	x, err := tools.BuildXRef(src)
	require.NoError(t, err)

	sym, ok := x.Symbols["loop"]
	require.True(t, ok)
	require.NotNil(t, sym.Definition)
	assert.Equal(t, 1, sym.Definition.Instr)
	require.Len(t, sym.References, 1)
	assert.Equal(t, tools.RefJump, sym.References[0].Kind)
	assert.Equal(t, 0, sym.References[0].Instr)
	assert.True(t, sym.Used())
	assert.Empty(t, x.Undefined)
}

func TestBuildXRefReportsUndefinedTarget(t *testing.T) {
	src := "j:\"nowhere\"\n"

	x, err := tools.BuildXRef(src)
	require.NoError(t, err)

	require.Len(t, x.Undefined, 1)
	assert.Equal(t, tools.RefJump, x.Undefined[0].Kind)
	sym, ok := x.Symbols["nowhere"]
	require.True(t, ok)
	assert.Nil(t, sym.Definition)
}

func TestBuildXRefFindsReferenceNestedInsideAnotherCall(t *testing.T) {
	src := "p:?:1 f:\"done\"\n;done\n"

	x, err := tools.BuildXRef(src)
	require.NoError(t, err)

	sym, ok := x.Symbols["done"]
	require.True(t, ok)
	require.Len(t, sym.References, 1)
	assert.Equal(t, tools.RefFunJump, sym.References[0].Kind)
}

func TestXRefUnreferencedListsDefinedButUnusedLabels(t *testing.T) {
	src := ";dead\np:1\n"

	x, err := tools.BuildXRef(src)
	require.NoError(t, err)

	unused := x.Unreferenced()
	require.Len(t, unused, 1)
	assert.Equal(t, "dead", unused[0].Name)
}

func TestBuildXRefRejectsUnparsableSource(t *testing.T) {
	_, err := tools.BuildXRef("p:\n")
	require.Error(t, err)
}
