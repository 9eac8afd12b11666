// Package service provides a thread-safe wrapper around one
// interp.Machine, shared by the TUI debugger and the HTTP/WebSocket
// API. Grounded on the teacher's service.DebuggerService: the same
// single-mutex locking discipline (lock for state access, release
// before anything that might block), the same Step/Continue/Pause/
// Reset shape, retargeted from VM registers+memory to the slot table
// and label-indexed instruction stream.
package service

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/lookbusy1344/scriptcore/interp"
	"github.com/lookbusy1344/scriptcore/lang"
	"github.com/lookbusy1344/scriptcore/parse"
	"github.com/lookbusy1344/scriptcore/token"
)

// stepsBeforeYield bounds how many instructions Continue executes
// between scheduler yields, so a long-running script doesn't starve a
// concurrent status query.
const stepsBeforeYield = 1000

var runnerLog *log.Logger

func init() {
	if os.Getenv("SCRIPTCORE_DEBUG") != "" {
		runnerLog = log.New(os.Stderr, "RUNNER: ", log.Ltime|log.Lmicroseconds)
	} else {
		runnerLog = log.New(io.Discard, "", 0)
	}
}

// Runner owns one interp.Machine plus the bookkeeping (breakpoints,
// running flag, buffered output) an interactive front-end needs.
type Runner struct {
	mu          sync.RWMutex
	machine     *interp.Machine
	source      string
	sourceMap   []SourceMapEntry
	breakpoints map[int]bool
	running     bool
	state       ExecutionState
	lastErr     *interp.InterpreterError
	outputBuf   []byte
	stdin       chan string
}

// SendInput delivers one line of input to a pending or future Input
// call. Buffered, so it may be called before the script blocks on it.
func (r *Runner) SendInput(line string) {
	r.mu.RLock()
	ch := r.stdin
	r.mu.RUnlock()
	if ch != nil {
		ch <- line
	}
}

// NewRunner creates an idle Runner with nothing loaded.
func NewRunner() *Runner {
	return &Runner{
		breakpoints: make(map[int]bool),
		state:       StateHalted,
	}
}

// Load tokenizes and parses src, replacing any previously loaded
// program and resetting all execution state.
func (r *Runner) Load(src string) error {
	toks, err := token.Tokenize(src)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	labels, instrs, err := parse.Parse(toks)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.source = src
	r.sourceMap = make([]SourceMapEntry, len(instrs))
	for i, in := range instrs {
		r.sourceMap[i] = SourceMapEntry{Index: i, Start: in.Span.Start, End: in.Span.End}
	}

	r.stdin = make(chan string, 8)
	r.machine = interp.New(labels, instrs,
		func(s string) error { r.outputBuf = append(r.outputBuf, s...); return nil },
		func() (string, error) { return <-r.stdin, nil },
		func(int) {},
	)
	r.running = false
	r.state = StateHalted
	r.lastErr = nil
	r.outputBuf = nil
	return nil
}

// Step executes exactly one top-level instruction.
func (r *Runner) Step() error {
	r.mu.RLock()
	loaded := r.machine != nil
	r.mu.RUnlock()
	if !loaded {
		return fmt.Errorf("no program loaded")
	}
	_, ierr := r.runStep()
	if ierr != nil {
		return ierr
	}
	return nil
}

// runStep executes one instruction on the loaded machine. It takes
// the lock only to snapshot the machine pointer and again afterward to
// record the result, releasing it across the StepOnce call itself —
// StepOnce may block on the Input builtin's stdin read, and SendInput
// needs RLock to deliver the pending line while that block is in
// progress. Holding the write lock across the call would deadlock the
// two against each other.
func (r *Runner) runStep() (halted bool, ierr *interp.InterpreterError) {
	r.mu.Lock()
	m := r.machine
	r.mu.Unlock()
	if m == nil {
		return false, nil
	}

	h, _, err := m.StepOnce()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateError
		r.lastErr = err
		r.running = false
		return h, err
	}
	if h {
		r.state = StateHalted
		r.running = false
	}
	return h, nil
}

// Continue runs until a breakpoint, an error, or program completion.
// It releases the lock between instructions so Pause/GetState remain
// responsive from another goroutine.
func (r *Runner) Continue() error {
	r.mu.Lock()
	if r.machine == nil {
		r.mu.Unlock()
		return fmt.Errorf("no program loaded")
	}
	r.running = true
	r.state = StateRunning
	r.mu.Unlock()

	steps := 0
	for {
		r.mu.Lock()
		if !r.running {
			r.mu.Unlock()
			return nil
		}
		if r.breakpoints[r.machine.Cursor] {
			runnerLog.Printf("breakpoint hit at instruction %d", r.machine.Cursor)
			r.running = false
			r.state = StateBreakpoint
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		halted, err := r.runStep()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}

		steps++
		if steps >= stepsBeforeYield {
			steps = 0
			time.Sleep(time.Millisecond)
		}
	}
}

// Pause stops a Continue loop running on another goroutine.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.state == StateRunning {
		r.state = StateHalted
	}
}

// Reset reloads the currently loaded source from scratch.
func (r *Runner) Reset() error {
	r.mu.RLock()
	src := r.source
	r.mu.RUnlock()
	if src == "" {
		return fmt.Errorf("no program loaded")
	}
	return r.Load(src)
}

// AddBreakpoint marks instrIndex as a breakpoint.
func (r *Runner) AddBreakpoint(instrIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.machine == nil || instrIndex < 0 || instrIndex >= len(r.machine.Instrs) {
		return fmt.Errorf("invalid breakpoint instruction index: %d", instrIndex)
	}
	r.breakpoints[instrIndex] = true
	return nil
}

// RemoveBreakpoint clears a breakpoint at instrIndex.
func (r *Runner) RemoveBreakpoint(instrIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.breakpoints, instrIndex)
}

// GetBreakpoints returns all currently set breakpoints.
func (r *Runner) GetBreakpoints() []BreakpointInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BreakpointInfo, 0, len(r.breakpoints))
	for idx, enabled := range r.breakpoints {
		out = append(out, BreakpointInfo{Line: idx, Enabled: enabled})
	}
	return out
}

// GetState returns the current execution state.
func (r *Runner) GetState() ExecutionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// GetCursor returns the next instruction index to execute.
func (r *Runner) GetCursor() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.machine == nil {
		return 0
	}
	return r.machine.Cursor
}

// GetSlots returns a stable-sorted snapshot of all occupied slots.
func (r *Runner) GetSlots() []SlotEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.machine == nil {
		return nil
	}
	out := make([]SlotEntry, 0, len(r.machine.Slots))
	for slot, v := range r.machine.Slots {
		out = append(out, SlotEntry{Slot: slot, Value: v.Text()})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Slot < out[j-1].Slot; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// GetSourceMap returns the loaded program's instruction-to-span map.
func (r *Runner) GetSourceMap() []SourceMapEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SourceMapEntry, len(r.sourceMap))
	copy(out, r.sourceMap)
	return out
}

// GetLabels returns the loaded program's label table.
func (r *Runner) GetLabels() lang.LabelTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.machine == nil {
		return nil
	}
	out := make(lang.LabelTable, len(r.machine.Labels))
	for k, v := range r.machine.Labels {
		out[k] = v
	}
	return out
}

// GetOutput returns everything written so far and clears the buffer.
func (r *Runner) GetOutput() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := string(r.outputBuf)
	r.outputBuf = nil
	return out
}

// LastError returns the error that halted execution, if any.
func (r *Runner) LastError() *interp.InterpreterError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// IsRunning reports whether a Continue loop is active.
func (r *Runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}
