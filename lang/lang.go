// Package lang holds the data model shared by the token, parse, and
// interp packages: spans, values, tokens, expressions and instructions.
// Keeping this vocabulary in one place means a span computed during
// tokenizing survives unchanged through parsing and into the
// instruction sequence the interpreter walks.
package lang

import "fmt"

// Span is a half-open byte range [Start, End) into the original source
// buffer. End is always >= Start.
type Span struct {
	Start int
	End   int
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// LineCol converts a byte offset into 1-based line and column numbers
// against src, for diagnostics that want a human position rather than
// a raw span. Grounded on the teacher's parser.Position, adapted from
// a lexer-maintained line/column pair to a pure function over a byte
// offset, since this tokenizer only records spans.
func LineCol(src string, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// ValueKind discriminates the three Value variants.
type ValueKind int

const (
	KindStr ValueKind = iota
	KindInt
	KindNone
)

func (k ValueKind) String() string {
	switch k {
	case KindStr:
		return "Str"
	case KindInt:
		return "Int"
	case KindNone:
		return "None"
	default:
		return "?"
	}
}

// Value is the tagged three-variant value type: Str, Int, or None.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
}

// Str builds a string value.
func Str(s string) Value { return Value{Kind: KindStr, Str: s} }

// Int builds an integer value.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// None is the absence-of-value singleton.
func None() Value { return Value{Kind: KindNone} }

// IsStr, IsInt, IsNone report the value's variant.
func (v Value) IsStr() bool  { return v.Kind == KindStr }
func (v Value) IsInt() bool  { return v.Kind == KindInt }
func (v Value) IsNone() bool { return v.Kind == KindNone }

// Truthy implements If's condition rule: Int is truthy iff non-zero,
// Str is truthy iff non-empty, None is always falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.Int != 0
	case KindStr:
		return v.Str != ""
	default:
		return false
	}
}

// Text renders the display form used by Print/Write/ThrowError: Str is
// raw, Int is decimal, None is the literal word "None".
func (v Value) Text() string {
	switch v.Kind {
	case KindStr:
		return v.Str
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	default:
		return "None"
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.Str)
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.Int)
	default:
		return "None"
	}
}

// ValuesEqual implements Equal's comparison rule. Cross-variant
// comparison is a runtime error, reported via the bool ok return.
func ValuesEqual(a, b Value) (equal bool, ok bool) {
	if a.Kind != b.Kind {
		return false, false
	}
	switch a.Kind {
	case KindInt:
		return a.Int == b.Int, true
	case KindStr:
		return a.Str == b.Str, true
	default:
		// Both None: trivially equal within the variant.
		return true, true
	}
}
