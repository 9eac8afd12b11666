// Package parse implements the parser stage: grouping tokens by line,
// classifying each line as a label definition or function-call
// statement, and recursively parsing nested expressions. Grounded on
// the teacher's parser/parser.go recursive-descent structure.
package parse

import (
	"regexp"

	"github.com/lookbusy1344/scriptcore/lang"
)

// Parse turns a token list into a label table and flat instruction
// sequence, or fails with the first ParseErrorInfo encountered.
func Parse(tokens []lang.TokenInfo) (lang.LabelTable, []lang.InstrInfo, error) {
	lines := splitLines(tokens)

	labels := lang.LabelTable{}
	instrs := make([]lang.InstrInfo, 0, len(lines))

	for _, line := range lines {
		instr, err := parseLine(line, labels, len(instrs))
		if err != nil {
			return nil, nil, err
		}
		instrs = append(instrs, instr)
	}

	return labels, instrs, nil
}

// splitLines partitions tokens at Eol, dropping empty lines (zero
// non-Eol tokens), per spec.md §4.2 "Line splitting".
func splitLines(tokens []lang.TokenInfo) [][]lang.TokenInfo {
	var lines [][]lang.TokenInfo
	var cur []lang.TokenInfo
	for _, ti := range tokens {
		if ti.Tok.Kind == lang.TokEol {
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, ti)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func lineSpan(line []lang.TokenInfo) lang.Span {
	sp := line[0].Span
	for _, ti := range line[1:] {
		sp = sp.Cover(ti.Span)
	}
	return sp
}

// parseLine classifies and parses one non-empty line. lineIndex is
// the index this line will occupy in the emitted instruction list.
func parseLine(line []lang.TokenInfo, labels lang.LabelTable, lineIndex int) (lang.InstrInfo, error) {
	head := line[0]

	switch head.Tok.Kind {
	case lang.TokSmi:
		return parseLabelLine(line, labels, lineIndex)

	case lang.TokIdn, lang.TokDol, lang.TokQue, lang.TokEql, lang.TokNot, lang.TokHsh:
		call, consumed, err := parseCall(line, 0, lineIndex)
		if err != nil {
			return lang.InstrInfo{}, err
		}
		if consumed != len(line) {
			return lang.InstrInfo{}, unexpectedToken(line[consumed], lineIndex)
		}
		return lang.InstrInfo{
			Instr: lang.Instr{Kind: lang.InstrFunCall, Call: call},
			Span:  call.Span,
		}, nil

	default:
		return lang.InstrInfo{}, unexpectedToken(head, lineIndex)
	}
}

func parseLabelLine(line []lang.TokenInfo, labels lang.LabelTable, lineIndex int) (lang.InstrInfo, error) {
	sp := lineSpan(line)

	if len(line) != 2 {
		if len(line) < 2 {
			return lang.InstrInfo{}, invalidSyntax("label definition requires a name", lineIndex, sp)
		}
		return lang.InstrInfo{}, unexpectedToken(line[1], lineIndex)
	}

	second := line[1]
	if second.Tok.Kind != lang.TokIdn {
		err := unexpectedToken(second, lineIndex)
		if second.Tok.Kind == lang.TokStr && identRe.MatchString(second.Tok.Str) {
			err.Note = "Maybe you meant `;" + second.Tok.Str + "`"
		}
		return lang.InstrInfo{}, err
	}

	name := second.Tok.Str
	if prevLine, exists := labels[name]; exists {
		return lang.InstrInfo{}, labelAlreadySet(name, prevLine, lineIndex, sp)
	}
	labels[name] = lineIndex

	return lang.InstrInfo{
		Instr: lang.Instr{Kind: lang.InstrLabelPlaceHolder, Label: name},
		Span:  sp,
	}, nil
}

// resolveFun maps a head token to its builtin, per spec.md §4.2's
// head table. Ok is false for an unrecognized identifier or a token
// kind that can never head a call.
func resolveFun(tok lang.Token) (lang.FunKind, bool) {
	switch tok.Kind {
	case lang.TokIdn:
		f, ok := lang.FunByIdentifier[tok.Str]
		return f, ok
	case lang.TokQue:
		return lang.FunIf, true
	case lang.TokEql:
		return lang.FunEqual, true
	case lang.TokHsh:
		return lang.FunCatchError, true
	case lang.TokNot:
		return lang.FunThrowError, true
	case lang.TokDol:
		return lang.FunExit, true
	case lang.TokTil:
		return lang.FunEmptySlot, true
	default:
		return 0, false
	}
}

// parseCall parses one function call (the head plus its arguments)
// starting at pos, returning the new cursor position (pos + tokens
// consumed). Used both for a top-level statement and for a nested
// call appearing as an argument.
func parseCall(line []lang.TokenInfo, pos int, lineIndex int) (*lang.FunCall, int, error) {
	head := line[pos]

	fun, ok := resolveFun(head.Tok)
	if !ok {
		return nil, 0, unknownFunctionName(head, lineIndex)
	}

	pos++
	arity := fun.Arity()

	if arity == 0 {
		return &lang.FunCall{Fun: fun, Span: head.Span}, pos, nil
	}

	if pos >= len(line) {
		return nil, 0, notEnoughArgument(fun, arity, 0, lineIndex, head.Span)
	}
	if line[pos].Tok.Kind != lang.TokCol {
		return nil, 0, unexpectedToken(line[pos], lineIndex)
	}
	pos++ // consume ':'

	args := make([]lang.Expr, 0, arity)
	for i := 0; i < arity; i++ {
		if pos >= len(line) {
			return nil, 0, notEnoughArgument(fun, arity, i, lineIndex, head.Span)
		}
		arg, consumed, err := parseArg(line, pos, lineIndex)
		if err != nil {
			return nil, 0, err
		}
		args = append(args, arg)
		pos += consumed
	}

	sp := head.Span.Cover(line[pos-1].Span)
	return &lang.FunCall{Fun: fun, Args: args, Span: sp}, pos, nil
}

// parseArg parses one argument expression at pos, returning the
// number of tokens consumed, per spec.md §4.2's argument-form list.
func parseArg(line []lang.TokenInfo, pos int, lineIndex int) (lang.Expr, int, error) {
	tok := line[pos]

	switch tok.Tok.Kind {
	case lang.TokStr:
		return lang.LiteralExpr(lang.Str(tok.Tok.Str)), 1, nil

	case lang.TokInt:
		return lang.LiteralExpr(lang.Int(tok.Tok.Int)), 1, nil

	case lang.TokTil, lang.TokDol, lang.TokIdn, lang.TokEql, lang.TokQue, lang.TokNot, lang.TokHsh:
		call, newPos, err := parseCall(line, pos, lineIndex)
		if err != nil {
			return lang.Expr{}, 0, err
		}
		return lang.CallExpr(call), newPos - pos, nil

	case lang.TokDot:
		if pos+1 >= len(line) || line[pos+1].Tok.Kind != lang.TokInt {
			if pos+1 >= len(line) {
				return lang.Expr{}, 0, unexpectedToken(tok, lineIndex)
			}
			return lang.Expr{}, 0, unexpectedToken(line[pos+1], lineIndex)
		}
		n := line[pos+1].Tok.Int
		sp := tok.Span.Cover(line[pos+1].Span)
		call := &lang.FunCall{Fun: lang.FunGet, Args: []lang.Expr{lang.LiteralExpr(lang.Int(n))}, Span: sp}
		return lang.CallExpr(call), 2, nil

	default:
		return lang.Expr{}, 0, unexpectedToken(tok, lineIndex)
	}
}
