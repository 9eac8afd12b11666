// Package interp implements the tree-walking interpreter: a slot
// table, label-based control flow, and a recursive expression
// evaluator dispatching on every built-in. Grounded on the teacher's
// vm.VM/executor.go fetch-decode-execute loop, adapted from a
// register machine to a slot-and-label one.
package interp

import (
	"github.com/lookbusy1344/scriptcore/lang"
)

// defaultMaxCallDepth bounds FunJump nesting so a runaway recursive
// script fails with a catchable error instead of exhausting the host
// stack. Overridable via Machine.MaxCallDepth.
const defaultMaxCallDepth = 512

// Machine holds the mutable state of one interpret call: the slot
// table, the immutable label table and instruction sequence, and the
// embedder-supplied I/O callbacks. A Machine is single-use — create a
// fresh one per interpret() call, per spec.md §5's slot table
// lifetime rule.
type Machine struct {
	Labels lang.LabelTable
	Instrs []lang.InstrInfo
	Slots  map[int64]lang.Value

	// Stdout receives Print/Write output. Stdin supplies Input's
	// response. Exit is invoked by the Exit built-in. When nil is passed
	// to New, Stdout and Exit default to no-ops and Stdin always fails.
	Stdout func(text string) error
	Stdin  func() (string, error)
	Exit   func(code int)

	MaxCallDepth int
	depth        int

	// Cursor is the next instruction index StepOnce will execute. It is
	// exported for read-only inspection by a debugger front-end; mutate
	// it only via Jump/StepOnce.
	Cursor int
	Halted bool
}

// New creates a Machine ready to interpret instrs against labels.
// stdout/stdin/exit follow the embedder contract from spec.md §6; pass
// nil for any of them to get a harmless default (stdout/exit are
// no-ops, stdin always fails).
func New(labels lang.LabelTable, instrs []lang.InstrInfo, stdout func(string) error, stdin func() (string, error), exit func(int)) *Machine {
	if stdout == nil {
		stdout = func(string) error { return nil }
	}
	if stdin == nil {
		stdin = func() (string, error) { return "", errStdinUnset }
	}
	if exit == nil {
		exit = func(int) {}
	}
	return &Machine{
		Labels:       labels,
		Instrs:       instrs,
		Slots:        make(map[int64]lang.Value),
		Stdout:       stdout,
		Stdin:        stdin,
		Exit:         exit,
		MaxCallDepth: defaultMaxCallDepth,
	}
}

var errStdinUnset = &stdinUnsetError{}

type stdinUnsetError struct{}

func (*stdinUnsetError) Error() string { return "no stdin callback configured" }

// Interpret runs the instruction sequence from index 0 to completion:
// a clean finish or a top-level Return both count as success.
func (m *Machine) Interpret() error {
	_, err := m.runLoop(0)
	if err == nil {
		return nil
	}
	return err
}

// StepOnce executes a single top-level instruction at m.Cursor and
// advances the cursor, for use by an interactive debugger. A FunJump
// encountered here still runs its whole nested loop to completion in
// one step — this steps over function calls, never into them, the way
// the teacher's StepOver collapses into the only step mode this
// language's flat label space needs. Returns halted=true once Cursor
// runs off the end of the program or a top-level Return fires.
func (m *Machine) StepOnce() (halted bool, retVal lang.Value, err *InterpreterError) {
	if m.Halted || m.Cursor >= len(m.Instrs) {
		m.Halted = true
		return true, lang.None(), nil
	}

	info := m.Instrs[m.Cursor]
	if info.Instr.Kind != lang.InstrFunCall {
		m.Cursor++
		return false, lang.None(), nil
	}

	_, sig := m.evalCall(info.Instr.Call)
	if sig == nil {
		m.Cursor++
		return false, lang.None(), nil
	}

	switch {
	case sig.Wrapped != nil:
		m.Halted = true
		return true, lang.None(), sig.Wrapped
	case sig.Err != nil:
		m.Halted = true
		return true, lang.None(), &InterpreterError{Err: sig.Err, Sp: info.Span}
	case sig.Return:
		m.Halted = true
		return true, sig.Value, nil
	default: // sig.Jump
		m.Cursor = sig.Target
		return false, lang.None(), nil
	}
}

// runLoop is the control loop from spec.md §4.3: it advances a cursor
// over m.Instrs, dispatching FunCall instructions and handling their
// signal. A nil error return with a value is used by FunJump to
// recover the nested loop's Return payload.
func (m *Machine) runLoop(start int) (lang.Value, *InterpreterError) {
	i := start
	for i < len(m.Instrs) {
		info := m.Instrs[i]

		if info.Instr.Kind == lang.InstrFunCall {
			val, sig := m.evalCall(info.Instr.Call)
			if sig != nil {
				switch {
				case sig.Wrapped != nil:
					return lang.None(), sig.Wrapped
				case sig.Err != nil:
					return lang.None(), &InterpreterError{Err: sig.Err, Sp: info.Span}
				case sig.Return:
					return sig.Value, nil
				case sig.Jump:
					i = sig.Target
				}
			} else {
				_ = val // normal value, discarded
			}
		}
		// LabelPlaceHolder and the reserved, unused SetLabel are no-ops.

		i++
	}
	return lang.None(), nil
}

// evalExpr evaluates a literal or nested call.
func (m *Machine) evalExpr(e lang.Expr) (lang.Value, *Signal) {
	if e.Kind == lang.ExprLiteral {
		return e.Literal, nil
	}
	return m.evalCall(e.Call)
}

// evalStr evaluates e and requires it to be a Str, reporting a
// TypeError (expected Str) otherwise.
func (m *Machine) evalStr(e lang.Expr) (string, *Signal) {
	v, sig := m.evalExpr(e)
	if sig != nil {
		return "", sig
	}
	if !v.IsStr() {
		return "", errSignal(typeErr(lang.KindStr, v))
	}
	return v.Str, nil
}

// evalInt evaluates e and requires it to be an Int.
func (m *Machine) evalInt(e lang.Expr) (int64, *Signal) {
	v, sig := m.evalExpr(e)
	if sig != nil {
		return 0, sig
	}
	if !v.IsInt() {
		return 0, errSignal(typeErr(lang.KindInt, v))
	}
	return v.Int, nil
}

// evalCall dispatches one FunCall, evaluating its arguments left to
// right and returning either a normal value (nil Signal) or a Signal
// to propagate.
func (m *Machine) evalCall(call *lang.FunCall) (lang.Value, *Signal) {
	switch call.Fun {
	case lang.FunSet:
		return m.evalSet(call)
	case lang.FunGet:
		return m.evalGet(call)
	case lang.FunJump:
		return m.evalJump(call)
	case lang.FunFunJump:
		return m.evalFunJump(call)
	case lang.FunReturn:
		return m.evalReturn(call)
	case lang.FunIf:
		return m.evalIf(call)
	case lang.FunCatchError:
		return m.evalCatchError(call)
	case lang.FunThrowError:
		return m.evalThrowError(call)
	case lang.FunExit:
		m.Exit(0)
		return lang.None(), nil
	case lang.FunEmptySlot:
		return m.evalEmptySlot()
	case lang.FunAdd:
		return m.evalAdd(call)
	case lang.FunEqual:
		return m.evalEqual(call)
	case lang.FunExtract:
		return m.evalExtract(call)
	case lang.FunConvert:
		return m.evalConvert(call)
	case lang.FunNumber:
		return m.evalNumber(call)
	case lang.FunText:
		return m.evalText(call)
	case lang.FunPrint:
		return m.evalPrint(call)
	case lang.FunWrite:
		return m.evalWrite(call)
	case lang.FunInput:
		return m.evalInput()
	case lang.FunKeyChar:
		return lang.None(), nil
	default:
		return lang.None(), errSignal(genericErr("unreachable: unknown builtin " + call.Fun.String()))
	}
}

func (m *Machine) evalSet(call *lang.FunCall) (lang.Value, *Signal) {
	slot, sig := m.evalInt(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	value, sig := m.evalExpr(call.Args[1])
	if sig != nil {
		return lang.None(), sig
	}
	m.Slots[slot] = value
	return lang.None(), nil
}

func (m *Machine) evalGet(call *lang.FunCall) (lang.Value, *Signal) {
	slot, sig := m.evalInt(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	if v, ok := m.Slots[slot]; ok {
		return v, nil
	}
	return lang.None(), nil
}

func (m *Machine) evalJump(call *lang.FunCall) (lang.Value, *Signal) {
	label, sig := m.evalStr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	idx, ok := m.Labels[label]
	if !ok {
		return lang.None(), errSignal(labelErr(label))
	}
	return lang.None(), jumpSignal(idx)
}

func (m *Machine) evalFunJump(call *lang.FunCall) (lang.Value, *Signal) {
	label, sig := m.evalStr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	idx, ok := m.Labels[label]
	if !ok {
		return lang.None(), errSignal(labelErr(label))
	}

	m.depth++
	if m.depth > m.MaxCallDepth {
		m.depth--
		return lang.None(), errSignal(genericErr("maximum call depth exceeded"))
	}
	val, ierr := m.runLoop(idx)
	m.depth--

	if ierr != nil {
		return lang.None(), &Signal{Wrapped: ierr}
	}
	return val, nil
}

func (m *Machine) evalReturn(call *lang.FunCall) (lang.Value, *Signal) {
	val, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	return lang.None(), returnSignal(val)
}

func (m *Machine) evalIf(call *lang.FunCall) (lang.Value, *Signal) {
	cond, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	if !cond.Truthy() {
		return lang.None(), nil
	}
	return m.evalExpr(call.Args[1])
}

func (m *Machine) evalCatchError(call *lang.FunCall) (lang.Value, *Signal) {
	label, sig := m.evalStr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	idx, ok := m.Labels[label]
	if !ok {
		return lang.None(), errSignal(labelErr(label))
	}

	val, sig := m.evalExpr(call.Args[1])
	if sig == nil {
		return val, nil
	}
	if sig.Jump || sig.Return {
		return lang.None(), sig
	}

	m.Slots[-1] = lang.Int(int64(sig.code()))
	return lang.None(), jumpSignal(idx)
}
