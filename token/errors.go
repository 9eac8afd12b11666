package token

import "github.com/lookbusy1344/scriptcore/lang"

// codeSyntaxError is the single error code the tokenizer raises,
// per spec.md §4.1.
const codeSyntaxError = 201

// SyntaxError is the tokenizer's sole error kind: unrecoverable, it
// halts the pipeline. Grounded on the teacher's parser.Error shape
// (parser/errors.go) but keyed on a byte span rather than line/column.
type SyntaxError struct {
	Msg  string
	Sp   lang.Span
	Note string
}

func (e *SyntaxError) Error() string {
	if e.Note != "" {
		return e.Msg + " (" + e.Note + ")"
	}
	return e.Msg
}

// Code implements lang.CodedError.
func (e *SyntaxError) Code() int { return codeSyntaxError }

// Span implements lang.CodedError.
func (e *SyntaxError) Span() lang.Span { return e.Sp }

func syntaxErr(msg string, sp lang.Span) *SyntaxError {
	return &SyntaxError{Msg: msg, Sp: sp}
}
