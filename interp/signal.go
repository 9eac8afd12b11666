package interp

import "github.com/lookbusy1344/scriptcore/lang"

// Signal is the non-normal control-flow carrier threaded out of
// evalExpr/evalCall, mirroring spec.md §9's four-valued Signal: a nil
// *Signal means "normal value, keep going"; a non-nil Signal carries
// exactly one of a jump target, a return value, a not-yet-wrapped
// runtime Error, or an Error that already crossed an instruction
// boundary inside a nested FunJump and must not be rewrapped.
type Signal struct {
	Jump   bool
	Target int
	Return bool
	Value  lang.Value // valid when Return

	Err     *Error            // raised directly by the current call
	Wrapped *InterpreterError // propagated up from a nested FunJump's loop
}

func errSignal(err *Error) *Signal { return &Signal{Err: err} }

func jumpSignal(target int) *Signal { return &Signal{Jump: true, Target: target} }

func returnSignal(v lang.Value) *Signal { return &Signal{Return: true, Value: v} }

// isError reports whether this signal represents a raised error
// (wrapped or not), as opposed to pure control flow (Jump/Return).
func (s *Signal) isError() bool { return s != nil && (s.Err != nil || s.Wrapped != nil) }

// code returns the numeric error code of a signal for which isError
// is true.
func (s *Signal) code() int {
	if s.Wrapped != nil {
		return s.Wrapped.Code()
	}
	return s.Err.Code()
}
