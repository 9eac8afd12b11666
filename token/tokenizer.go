package token

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/lookbusy1344/scriptcore/lang"
)

// Tokenizer walks a positioned character sequence one rune at a time,
// in the manner of the teacher's parser.Lexer (readChar/peekChar over
// an index cursor), emitting lang.TokenInfo or failing with the first
// SyntaxError encountered.
type Tokenizer struct {
	src   string
	chars []positionedChar
	pos   int
}

// New creates a tokenizer for the given source text.
func New(src string) *Tokenizer {
	return &Tokenizer{src: src, chars: scan(src)}
}

// Tokenize runs the tokenizer over the whole source and returns the
// full token list, or the first SyntaxError encountered.
func Tokenize(src string) ([]lang.TokenInfo, error) {
	return New(src).Run()
}

func (t *Tokenizer) cur() (rune, bool) {
	if t.pos >= len(t.chars) {
		return 0, false
	}
	return t.chars[t.pos].ch, true
}

// curOffset is the byte offset of the current (not-yet-consumed)
// character, or len(src) at end of input.
func (t *Tokenizer) curOffset() int {
	if t.pos < len(t.chars) {
		return t.chars[t.pos].offset
	}
	return len(t.src)
}

func (t *Tokenizer) advance() { t.pos++ }

var singleCharTokens = map[rune]lang.TokenKind{
	'~': lang.TokTil, ':': lang.TokCol, '.': lang.TokDot, '$': lang.TokDol,
	';': lang.TokSmi, '?': lang.TokQue, '=': lang.TokEql, '!': lang.TokNot,
	'#': lang.TokHsh,
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentPart(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }

// Run tokenizes the entire source buffer.
func (t *Tokenizer) Run() ([]lang.TokenInfo, error) {
	var out []lang.TokenInfo
	for {
		r, ok := t.cur()
		if !ok {
			return out, nil
		}

		start := t.curOffset()

		switch {
		case r == ' ' || r == '\t' || r == '\r':
			t.advance()

		case r == '\n':
			t.advance()
			out = append(out, lang.TokenInfo{
				Tok:  lang.Token{Kind: lang.TokEol},
				Span: lang.Span{Start: start, End: t.curOffset()},
			})

		case isSingleChar(r):
			kind := singleCharTokens[r]
			t.advance()
			out = append(out, lang.TokenInfo{
				Tok:  lang.Token{Kind: kind},
				Span: lang.Span{Start: start, End: t.curOffset()},
			})

		case isIdentStart(r):
			text, end := t.readIdentifier()
			out = append(out, lang.TokenInfo{
				Tok:  lang.Token{Kind: lang.TokIdn, Str: text},
				Span: lang.Span{Start: start, End: end},
			})

		case isDigit(r) || r == '-':
			tok, end, err := t.readNumber(start)
			if err != nil {
				return nil, err
			}
			out = append(out, lang.TokenInfo{Tok: tok, Span: lang.Span{Start: start, End: end}})

		case r == '"':
			text, end, err := t.readString(start)
			if err != nil {
				return nil, err
			}
			out = append(out, lang.TokenInfo{
				Tok:  lang.Token{Kind: lang.TokStr, Str: text},
				Span: lang.Span{Start: start, End: end},
			})

		case r == '[':
			if err := t.skipComment(start); err != nil {
				return nil, err
			}

		default:
			t.advance()
			return nil, syntaxErr("Invalid character", lang.Span{Start: start, End: t.curOffset()})
		}
	}
}

func isSingleChar(r rune) bool {
	_, ok := singleCharTokens[r]
	return ok
}

func (t *Tokenizer) readIdentifier() (string, int) {
	var sb strings.Builder
	for {
		r, ok := t.cur()
		if !ok || !isIdentPart(r) {
			break
		}
		sb.WriteRune(r)
		t.advance()
	}
	return sb.String(), t.curOffset()
}

func (t *Tokenizer) readNumber(start int) (lang.Token, int, error) {
	var sb strings.Builder
	if r, ok := t.cur(); ok && r == '-' {
		sb.WriteRune(r)
		t.advance()
	}
	for {
		r, ok := t.cur()
		if !ok || !isDigit(r) {
			break
		}
		sb.WriteRune(r)
		t.advance()
	}
	end := t.curOffset()

	if r, ok := t.cur(); ok && (unicode.IsLetter(r) || r == '_') {
		return lang.Token{}, 0, syntaxErr("Invalid number literal", lang.Span{Start: start, End: end})
	}

	n, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return lang.Token{}, 0, syntaxErr("Invalid isize", lang.Span{Start: start, End: end})
		}
		return lang.Token{}, 0, syntaxErr("Invalid number literal", lang.Span{Start: start, End: end})
	}

	return lang.Token{Kind: lang.TokInt, Int: n}, end, nil
}

func (t *Tokenizer) readString(start int) (string, int, error) {
	t.advance() // consume opening quote
	var sb strings.Builder
	for {
		r, ok := t.cur()
		if !ok {
			return "", 0, syntaxErr("EOF while scanning for the string literal", lang.Span{Start: start, End: t.curOffset()})
		}
		if r == '"' {
			t.advance()
			return sb.String(), t.curOffset(), nil
		}
		if r == '\\' {
			t.advance()
			esc, ok := t.cur()
			if !ok {
				return "", 0, syntaxErr("EOF while scanning for the escape sequence", lang.Span{Start: start, End: t.curOffset()})
			}
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
			t.advance()
			continue
		}
		sb.WriteRune(r)
		t.advance()
	}
}

func (t *Tokenizer) skipComment(start int) error {
	t.advance() // consume '['
	for {
		r, ok := t.cur()
		if !ok {
			return syntaxErr("EOF while scanning for the comment literal", lang.Span{Start: start, End: t.curOffset()})
		}
		t.advance()
		if r == ']' {
			return nil
		}
	}
}
