// Package token implements the scanner and tokenizer stages of the
// pipeline: mapping source text to a positioned character sequence,
// then to a list of lang.TokenInfo.
package token

// positionedChar is one rune together with its byte offset in the
// original source buffer. The scanner stage (§2 step 1 of the spec)
// produces a sequence of these; the tokenizer consumes it one
// character at a time, mirroring the teacher's readChar/peekChar
// lexer idiom but keyed on byte offsets instead of line/column.
type positionedChar struct {
	ch     rune
	offset int
}

// scan maps source text to its positioned character sequence.
func scan(src string) []positionedChar {
	chars := make([]positionedChar, 0, len(src))
	for i, r := range src {
		chars = append(chars, positionedChar{ch: r, offset: i})
	}
	return chars
}
