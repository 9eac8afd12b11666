package parse

import (
	"fmt"

	"github.com/lookbusy1344/scriptcore/lang"
)

// ErrorKind discriminates the five structured parse error variants
// from spec.md §4.2/§7.
type ErrorKind int

const (
	KindLabelAlreadySet ErrorKind = iota
	KindUnexpectedToken
	KindInvalidSyntax
	KindNotEnoughArgument
	KindUnknownFunctionName
)

const (
	codeLabelAlreadySet     = 301
	codeUnexpectedToken     = 302
	codeInvalidSyntax       = 303
	codeNotEnoughArgument   = 304
	codeUnknownFunctionName = 305
)

// Error is the structured parse error, grounded on the teacher's
// parser.Error (parser/errors.go) with its Pos/Message/Kind shape,
// keyed on a byte span instead of line/column.
type Error struct {
	Kind ErrorKind
	Sp   lang.Span

	// KindLabelAlreadySet
	Label    string
	PrevLine int

	// KindUnexpectedToken
	Tok lang.Token

	// KindNotEnoughArgument
	Head     lang.FunKind
	Expected int
	Got      int

	// KindUnknownFunctionName
	Name string

	// KindInvalidSyntax
	Msg string
}

func (e *Error) Code() int {
	switch e.Kind {
	case KindLabelAlreadySet:
		return codeLabelAlreadySet
	case KindUnexpectedToken:
		return codeUnexpectedToken
	case KindInvalidSyntax:
		return codeInvalidSyntax
	case KindNotEnoughArgument:
		return codeNotEnoughArgument
	case KindUnknownFunctionName:
		return codeUnknownFunctionName
	default:
		return 0
	}
}

func (e *Error) Span() lang.Span { return e.Sp }

func (e *Error) Error() string {
	switch e.Kind {
	case KindLabelAlreadySet:
		return fmt.Sprintf("label %q already set at line %d", e.Label, e.PrevLine)
	case KindUnexpectedToken:
		return fmt.Sprintf("unexpected token %s", e.Tok)
	case KindInvalidSyntax:
		return e.Msg
	case KindNotEnoughArgument:
		return fmt.Sprintf("%s expected %d argument(s), got %d", e.Head, e.Expected, e.Got)
	case KindUnknownFunctionName:
		return fmt.Sprintf("unknown function name %q", e.Name)
	default:
		return "parse error"
	}
}

// ParseErrorInfo wraps a structured Error with the offending line
// index (for span rendering against the source's line list) and an
// optional note such as "Maybe you meant `;name`".
type ParseErrorInfo struct {
	Line int
	Err  *Error
	Note string
}

func (p *ParseErrorInfo) Error() string {
	if p.Note != "" {
		return fmt.Sprintf("%s (%s)", p.Err.Error(), p.Note)
	}
	return p.Err.Error()
}

func (p *ParseErrorInfo) Code() int      { return p.Err.Code() }
func (p *ParseErrorInfo) Span() lang.Span { return p.Err.Sp }

func labelAlreadySet(label string, prevLine, line int, sp lang.Span) *ParseErrorInfo {
	return &ParseErrorInfo{Line: line, Err: &Error{Kind: KindLabelAlreadySet, Label: label, PrevLine: prevLine, Sp: sp}}
}

func unexpectedToken(tok lang.TokenInfo, line int) *ParseErrorInfo {
	return &ParseErrorInfo{Line: line, Err: &Error{Kind: KindUnexpectedToken, Tok: tok.Tok, Sp: tok.Span}}
}

func invalidSyntax(msg string, line int, sp lang.Span) *ParseErrorInfo {
	return &ParseErrorInfo{Line: line, Err: &Error{Kind: KindInvalidSyntax, Msg: msg, Sp: sp}}
}

func notEnoughArgument(head lang.FunKind, expected, got, line int, sp lang.Span) *ParseErrorInfo {
	return &ParseErrorInfo{Line: line, Err: &Error{Kind: KindNotEnoughArgument, Head: head, Expected: expected, Got: got, Sp: sp}}
}

func unknownFunctionName(tok lang.TokenInfo, line int) *ParseErrorInfo {
	return &ParseErrorInfo{Line: line, Err: &Error{Kind: KindUnknownFunctionName, Name: tok.Tok.Str, Sp: tok.Span}}
}
