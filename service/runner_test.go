package service_test

import (
	"testing"
	"time"

	"github.com/lookbusy1344/scriptcore/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerLoadAndContinueToCompletion(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:0 \"hi\"\np:g:0\n"))

	require.NoError(t, r.Continue())
	assert.Equal(t, service.StateHalted, r.GetState())
	assert.Equal(t, "hi\n", r.GetOutput())
}

func TestRunnerStepAdvancesCursorOneAtATime(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:0 1\ns:1 2\np:g:0\n"))

	assert.Equal(t, 0, r.GetCursor())
	require.NoError(t, r.Step())
	assert.Equal(t, 1, r.GetCursor())
	require.NoError(t, r.Step())
	assert.Equal(t, 2, r.GetCursor())
	require.NoError(t, r.Step())
	assert.Equal(t, "1\n", r.GetOutput())
}

func TestRunnerBreakpointStopsContinue(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:0 1\ns:1 2\np:g:0\n"))
	require.NoError(t, r.AddBreakpoint(2))

	require.NoError(t, r.Continue())
	assert.Equal(t, service.StateBreakpoint, r.GetState())
	assert.Equal(t, 2, r.GetCursor())
	assert.Equal(t, "", r.GetOutput())
}

func TestRunnerErrorSetsErrorStateAndLastError(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load(`a:"x" 1` + "\n"))

	err := r.Continue()
	require.Error(t, err)
	assert.Equal(t, service.StateError, r.GetState())
	require.NotNil(t, r.LastError())
	assert.Equal(t, 400, r.LastError().Code())
}

func TestRunnerResetReloadsFromScratch(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:0 1\np:g:0\n"))
	require.NoError(t, r.Continue())
	assert.Equal(t, "1\n", r.GetOutput())

	require.NoError(t, r.Reset())
	assert.Equal(t, service.StateHalted, r.GetState())
	assert.Equal(t, 0, r.GetCursor())
	assert.Equal(t, "", r.GetOutput())

	require.NoError(t, r.Continue())
	assert.Equal(t, "1\n", r.GetOutput())
}

// TestRunnerStepDoesNotDeadlockOnPendingInput steps a program that
// blocks on Input before any input has been buffered, and delivers
// the line from another goroutine while the step is in flight. Step
// must release its lock across the blocking call so SendInput can
// acquire it to deliver the line; otherwise this test hangs until the
// suite's timeout.
func TestRunnerStepDoesNotDeadlockOnPendingInput(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:0 i\np:g:0\n"))

	done := make(chan error, 1)
	go func() {
		done <- r.Step()
	}()

	time.Sleep(10 * time.Millisecond)
	r.SendInput("hi")

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Step deadlocked waiting for input")
	}
	assert.Equal(t, 1, r.GetCursor())
}

func TestRunnerGetSlotsSortedBySlotNumber(t *testing.T) {
	r := service.NewRunner()
	require.NoError(t, r.Load("s:5 1\ns:1 2\ns:3 3\n"))
	require.NoError(t, r.Continue())

	slots := r.GetSlots()
	require.Len(t, slots, 3)
	assert.Equal(t, int64(1), slots[0].Slot)
	assert.Equal(t, int64(3), slots[1].Slot)
	assert.Equal(t, int64(5), slots[2].Slot)
}
