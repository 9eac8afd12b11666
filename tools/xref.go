// Package tools provides static analysis over source text that never
// runs an interp.Machine: cross-referencing labels, linting common
// mistakes, and reformatting source into a canonical layout. Grounded
// on the teacher's tools package (xref.go, lint.go, format.go), whose
// ARM-specific reference taxonomy and column-aligned assembly layout
// are retargeted here to this language's flat label/Instr model.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lookbusy1344/scriptcore/lang"
	"github.com/lookbusy1344/scriptcore/parse"
	"github.com/lookbusy1344/scriptcore/token"
)

// RefKind discriminates a label's definition from uses by the three
// label-targeting builtins. Unlike the
// teacher's six-way ARM taxonomy (branch/load/store/call/data/def),
// this language has exactly one non-definition way to target a label:
// naming it as the first argument to Jump, FunJump, or CatchError.
type RefKind int

const (
	RefDefinition RefKind = iota
	RefJump
	RefFunJump
	RefCatchError
)

func (k RefKind) String() string {
	switch k {
	case RefDefinition:
		return "definition"
	case RefJump:
		return "jump"
	case RefFunJump:
		return "funjump"
	case RefCatchError:
		return "catch"
	default:
		return "?"
	}
}

// Reference is one occurrence of a label, either its definition or a
// use as a jump/catch target.
type Reference struct {
	Kind  RefKind
	Instr int // instruction index the reference occurs at
	Line  int
	Col   int
}

// Symbol collects every reference to one label name.
type Symbol struct {
	Name       string
	Definition *Reference // nil if the label is never defined
	References []Reference
}

// Used reports whether anything jumps to or catches into this label.
func (s *Symbol) Used() bool { return len(s.References) > 0 }

// XRef is the full cross-reference result for one source.
type XRef struct {
	Symbols   map[string]*Symbol
	Undefined []Reference // references naming a label with no Definition
}

// BuildXRef tokenizes and parses src, then walks every instruction
// collecting label definitions and jump/funjump/catch references.
// Grounded on the teacher's XRefGenerator.Generate, which parses once
// and then scans parser.Instruction operands for branch/load/store
// targets; here the scan walks Instr/FunCall trees instead of operand
// strings, since labels are ordinary Str-literal arguments.
func BuildXRef(src string) (*XRef, error) {
	tokens, err := token.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("tokenize error: %w", err)
	}
	labels, instrs, err := parse.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	x := &XRef{Symbols: make(map[string]*Symbol)}

	symbolFor := func(name string) *Symbol {
		sym, ok := x.Symbols[name]
		if !ok {
			sym = &Symbol{Name: name}
			x.Symbols[name] = sym
		}
		return sym
	}

	for name, idx := range labels {
		line, col := lang.LineCol(src, instrs[idx].Span.Start)
		sym := symbolFor(name)
		sym.Definition = &Reference{Kind: RefDefinition, Instr: idx, Line: line, Col: col}
	}

	for idx, info := range instrs {
		if info.Instr.Kind != lang.InstrFunCall {
			continue
		}
		collectRefs(info.Instr.Call, idx, src, x, symbolFor)
	}

	for _, sym := range x.Symbols {
		if sym.Definition == nil {
			x.Undefined = append(x.Undefined, sym.References...)
		}
	}
	sort.Slice(x.Undefined, func(i, j int) bool {
		return x.Undefined[i].Instr < x.Undefined[j].Instr
	})

	return x, nil
}

// collectRefs walks a FunCall tree, recording a reference whenever a
// Jump/FunJump/CatchError's label argument is a literal string, and
// recursing into every argument (including the non-label ones) since
// any argument may itself be a nested call containing further jumps.
func collectRefs(call *lang.FunCall, instrIdx int, src string, x *XRef, symbolFor func(string) *Symbol) {
	if call == nil {
		return
	}

	var kind RefKind
	labeled := false
	switch call.Fun {
	case lang.FunJump:
		kind, labeled = RefJump, true
	case lang.FunFunJump:
		kind, labeled = RefFunJump, true
	case lang.FunCatchError:
		kind, labeled = RefCatchError, true
	}

	if labeled && len(call.Args) > 0 && call.Args[0].Kind == lang.ExprLiteral && call.Args[0].Literal.IsStr() {
		line, col := lang.LineCol(src, call.Span.Start)
		sym := symbolFor(call.Args[0].Literal.Str)
		sym.References = append(sym.References, Reference{Kind: kind, Instr: instrIdx, Line: line, Col: col})
	}

	for _, arg := range call.Args {
		if arg.Kind == lang.ExprCall {
			collectRefs(arg.Call, instrIdx, src, x, symbolFor)
		}
	}
}

// Unreferenced returns every defined label that nothing jumps to or
// catches into, sorted by definition instruction index.
func (x *XRef) Unreferenced() []*Symbol {
	var out []*Symbol
	for _, sym := range x.Symbols {
		if sym.Definition != nil && !sym.Used() {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Definition.Instr < out[j].Definition.Instr })
	return out
}

// Report renders a human-readable summary in the teacher's XRefReport
// style: one block per label, definition first, then each reference.
func (x *XRef) Report() string {
	names := make([]string, 0, len(x.Symbols))
	for name := range x.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	defined := 0
	for _, sym := range x.Symbols {
		if sym.Definition != nil {
			defined++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "labels: %d defined, %d undefined reference(s)\n\n", defined, len(x.Undefined))

	for _, name := range names {
		sym := x.Symbols[name]
		if sym.Definition != nil {
			fmt.Fprintf(&b, "%s (line %d:%d)\n", name, sym.Definition.Line, sym.Definition.Col)
		} else {
			fmt.Fprintf(&b, "%s (undefined)\n", name)
		}
		for _, ref := range sym.References {
			fmt.Fprintf(&b, "  %s at instr %d, line %d:%d\n", ref.Kind, ref.Instr, ref.Line, ref.Col)
		}
	}
	return b.String()
}

