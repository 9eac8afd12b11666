package interp

import (
	"fmt"

	"github.com/lookbusy1344/scriptcore/lang"
)

// ErrorKind discriminates the five structured runtime error variants
// from spec.md §4.4/§7.
type ErrorKind int

const (
	KindGeneric  ErrorKind = iota // Error(text)
	KindType                     // TypeError{expected, got}
	KindLabel                    // LabelError(name)
	KindValue                    // ValueError(value)
	KindNoSlot                   // NoSlotError
)

const (
	codeGeneric  = 400
	codeType     = 401
	codeLabel    = 402
	codeValue    = 403
	codeNoSlot   = 404
)

// Error is the runtime error raised while evaluating a FunCall. It is
// unwrapped (no source span) until it crosses an instruction boundary
// in the control loop, at which point it is promoted to an
// InterpreterError. Grounded on the teacher's plain-error style
// (vm.Step wrapping errors with fmt.Errorf) but kept as a typed value
// so CatchError can recover its numeric code.
type Error struct {
	Kind     ErrorKind
	Text     string     // KindGeneric message, or KindLabel's label name
	Expected lang.ValueKind
	Got      lang.Value
	Note     string
}

func (e *Error) Code() int {
	switch e.Kind {
	case KindType:
		return codeType
	case KindLabel:
		return codeLabel
	case KindValue:
		return codeValue
	case KindNoSlot:
		return codeNoSlot
	default:
		return codeGeneric
	}
}

func (e *Error) Error() string {
	msg := e.message()
	if e.Note != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Note)
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case KindType:
		return fmt.Sprintf("TypeError: expected %s, got %s", e.Expected, e.Got)
	case KindLabel:
		return fmt.Sprintf("LabelError: no such label %q", e.Text)
	case KindValue:
		return fmt.Sprintf("ValueError: %s", e.Got)
	case KindNoSlot:
		return "NoSlotError: no free slot available"
	default:
		return e.Text
	}
}

func genericErr(text string) *Error { return &Error{Kind: KindGeneric, Text: text} }

func typeErr(expected lang.ValueKind, got lang.Value) *Error {
	return &Error{Kind: KindType, Expected: expected, Got: got}
}

func labelErr(name string) *Error { return &Error{Kind: KindLabel, Text: name} }

func valueErr(got lang.Value, note string) *Error {
	return &Error{Kind: KindValue, Got: got, Note: note}
}

func noSlotErr() *Error {
	return &Error{Kind: KindNoSlot, Note: "at this point, you better use a known slot number"}
}

// InterpreterError is a runtime Error that has crossed an instruction
// boundary and been pinned to that instruction's source span.
// Implements lang.CodedError.
type InterpreterError struct {
	Err *Error
	Sp  lang.Span
}

func (e *InterpreterError) Error() string  { return e.Err.Error() }
func (e *InterpreterError) Code() int      { return e.Err.Code() }
func (e *InterpreterError) Span() lang.Span { return e.Sp }
