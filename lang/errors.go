package lang

// CodedError is implemented by every error the three pipeline stages
// raise: SyntaxError (token), the parse.Error family, and
// interp.InterpreterError. The driver renders Code() as "E<n>" and Span() as the
// highlighted source range.
type CodedError interface {
	error
	Code() int
	Span() Span
}
