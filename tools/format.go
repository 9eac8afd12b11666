package tools

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/scriptcore/lang"
	"github.com/lookbusy1344/scriptcore/parse"
	"github.com/lookbusy1344/scriptcore/token"
)

// FormatStyle names a Format layout. Grounded on the teacher's
// FormatStyle (Default/Compact/Expanded), collapsed to two variants
// since this language has no column-aligned operand/comment layout to
// expand. Both variants currently produce identical output: a single
// space between arguments.
type FormatStyle int

const (
	FormatDefault FormatStyle = iota
	FormatCompact
)

// FormatOptions controls Format's output.
type FormatOptions struct {
	Style FormatStyle
}

// DefaultFormatOptions mirrors the teacher's DefaultFormatOptions.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{Style: FormatDefault}
}

// CompactFormatOptions mirrors the teacher's CompactFormatOptions.
func CompactFormatOptions() *FormatOptions {
	return &FormatOptions{Style: FormatCompact}
}

// Format re-renders src into a canonical one-statement-per-line
// layout: labels as ";name", calls as "head:arg arg", nested calls
// recursively rendered the same way. Grounded on the teacher's
// Formatter.Format (parse, then walk the program re-emitting each
// instruction/directive), retargeted from column-aligned assembly
// text to this language's flat, whitespace-separated call syntax.
func Format(src string, options *FormatOptions) (string, error) {
	if options == nil {
		options = DefaultFormatOptions()
	}

	tokens, err := token.Tokenize(src)
	if err != nil {
		return "", fmt.Errorf("tokenize error: %w", err)
	}
	_, instrs, err := parse.Parse(tokens)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	var b strings.Builder
	for _, info := range instrs {
		writeInstr(&b, info.Instr, options)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FormatString is a convenience wrapper using DefaultFormatOptions,
// mirroring the teacher's FormatString.
func FormatString(src string) (string, error) {
	return Format(src, DefaultFormatOptions())
}

func writeInstr(b *strings.Builder, instr lang.Instr, options *FormatOptions) {
	if instr.Kind == lang.InstrLabelPlaceHolder {
		b.WriteByte(';')
		b.WriteString(instr.Label)
		return
	}
	writeCall(b, instr.Call, options)
}

func writeCall(b *strings.Builder, call *lang.FunCall, options *FormatOptions) {
	b.WriteString(call.Fun.String())
	if len(call.Args) == 0 {
		return
	}
	b.WriteByte(':')
	for i, arg := range call.Args {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeExpr(b, arg, options)
	}
}

func writeExpr(b *strings.Builder, expr lang.Expr, options *FormatOptions) {
	if expr.Kind == lang.ExprCall {
		writeCall(b, expr.Call, options)
		return
	}
	writeLiteral(b, expr.Literal)
}

func writeLiteral(b *strings.Builder, v lang.Value) {
	switch v.Kind {
	case lang.KindInt:
		fmt.Fprintf(b, "%d", v.Int)
	case lang.KindStr:
		b.WriteByte('"')
		b.WriteString(escapeString(v.Str))
		b.WriteByte('"')
	default:
		// KindNone has no literal surface syntax; EmptySlot/None-typed
		// results never round-trip through Format since the parser
		// never produces a None literal expression.
	}
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
