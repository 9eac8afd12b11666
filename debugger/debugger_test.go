package debugger_test

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/debugger"
	"github.com/lookbusy1344/scriptcore/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugger(t *testing.T, src string) *debugger.Debugger {
	t.Helper()
	r := service.NewRunner()
	require.NoError(t, r.Load(src))
	return debugger.NewDebugger(r)
}

func TestDebuggerStepCommandAdvancesCursor(t *testing.T) {
	d := newDebugger(t, "s:0 1\ns:1 2\n")
	require.NoError(t, d.ExecuteCommand("step"))
	assert.Equal(t, 1, d.Runner.GetCursor())
	assert.Contains(t, d.GetOutput(), "stepped to instruction 1")
}

func TestDebuggerEmptyCommandRepeatsLast(t *testing.T) {
	d := newDebugger(t, "s:0 1\ns:1 2\ns:2 3\n")
	require.NoError(t, d.ExecuteCommand("step"))
	require.NoError(t, d.ExecuteCommand(""))
	assert.Equal(t, 2, d.Runner.GetCursor())
}

func TestDebuggerBreakAndContinue(t *testing.T) {
	d := newDebugger(t, "s:0 1\ns:1 2\n;stop\np:g:0\n")
	require.NoError(t, d.ExecuteCommand("break stop"))
	require.NoError(t, d.ExecuteCommand("continue"))
	assert.Equal(t, service.StateBreakpoint, d.Runner.GetState())
}

func TestDebuggerBreakRejectsUndefinedLabel(t *testing.T) {
	d := newDebugger(t, "s:0 1\n")
	err := d.ExecuteCommand("break nowhere")
	require.Error(t, err)
}

func TestDebuggerDeleteAllBreakpoints(t *testing.T) {
	d := newDebugger(t, ";start\ns:0 1\n")
	require.NoError(t, d.ExecuteCommand("break start"))
	require.NoError(t, d.ExecuteCommand("delete"))
	assert.Empty(t, d.Runner.GetBreakpoints())
}

func TestDebuggerUnknownCommandErrors(t *testing.T) {
	d := newDebugger(t, "s:0 1\n")
	err := d.ExecuteCommand("bogus")
	require.Error(t, err)
}

func TestDebuggerHistoryTracksCommands(t *testing.T) {
	d := newDebugger(t, "s:0 1\n")
	require.NoError(t, d.ExecuteCommand("slots"))
	require.NoError(t, d.ExecuteCommand("labels"))
	assert.Equal(t, []string{"slots", "labels"}, d.History.GetAll())
}
