package lang

// FunKind enumerates every built-in function the language provides.
// Arity is fixed per variant (0-2) and checked at parse time.
type FunKind int

const (
	FunSet        FunKind = iota // Set(slot, value)     arity 2
	FunGet                       // Get(slot)             arity 1
	FunWrite                     // Write(value)          arity 1
	FunPrint                     // Print(value)          arity 1
	FunAdd                       // Add(a, b)             arity 2
	FunJump                      // Jump(label)           arity 1
	FunConvert                   // Convert(value)        arity 1
	FunExtract                   // Extract(str, index)   arity 2
	FunInput                     // Input()               arity 0
	FunKeyChar                   // KeyChar()             arity 0
	FunNumber                    // Number(value)         arity 1
	FunText                      // Text(value)           arity 1
	FunFunJump                   // FunJump(label)        arity 1
	FunReturn                    // Return(value)         arity 1
	FunIf                        // If(cond, value)       arity 2
	FunEqual                     // Equal(a, b)           arity 2
	FunCatchError                // CatchError(label, v)  arity 2
	FunExit                      // Exit()                arity 0
	FunEmptySlot                 // EmptySlot()           arity 0
	FunThrowError                // ThrowError(value)     arity 1
)

var funNames = map[FunKind]string{
	FunSet: "s", FunGet: "g", FunWrite: "w", FunPrint: "p", FunAdd: "a",
	FunJump: "j", FunConvert: "c", FunExtract: "x", FunInput: "i",
	FunKeyChar: "k", FunNumber: "n", FunText: "t", FunFunJump: "f",
	FunReturn: "r", FunIf: "?", FunEqual: "=", FunCatchError: "#",
	FunExit: "$", FunEmptySlot: "~", FunThrowError: "!",
}

func (f FunKind) String() string {
	if name, ok := funNames[f]; ok {
		return name
	}
	return "?"
}

// Arity returns the fixed argument count for a built-in.
func (f FunKind) Arity() int {
	switch f {
	case FunInput, FunKeyChar, FunExit, FunEmptySlot:
		return 0
	case FunGet, FunWrite, FunPrint, FunJump, FunConvert, FunNumber,
		FunText, FunFunJump, FunReturn, FunThrowError:
		return 1
	case FunSet, FunAdd, FunExtract, FunIf, FunEqual, FunCatchError:
		return 2
	default:
		return 0
	}
}

// FunByIdentifier maps the single-letter identifier heads from §4.2 to
// their builtin. Only identifiers; the punctuation-headed builtins
// (If, Equal, CatchError, Exit, EmptySlot, ThrowError) are resolved by
// the parser directly from their token kind.
var FunByIdentifier = map[string]FunKind{
	"s": FunSet, "g": FunGet, "w": FunWrite, "p": FunPrint, "a": FunAdd,
	"j": FunJump, "c": FunConvert, "x": FunExtract, "i": FunInput,
	"k": FunKeyChar, "n": FunNumber, "t": FunText, "f": FunFunJump,
	"r": FunReturn,
}
