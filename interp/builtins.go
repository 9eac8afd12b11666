package interp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lookbusy1344/scriptcore/lang"
)

func (m *Machine) evalAdd(call *lang.FunCall) (lang.Value, *Signal) {
	a, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	b, sig := m.evalExpr(call.Args[1])
	if sig != nil {
		return lang.None(), sig
	}

	switch {
	case a.IsInt() && b.IsInt():
		sum, ok := checkedAdd(a.Int, b.Int)
		if !ok {
			return lang.None(), errSignal(genericErr(fmt.Sprintf("adding %s and %s overflows", a, b)))
		}
		return lang.Int(sum), nil
	case a.IsStr() && b.IsStr():
		return lang.Str(a.Str + b.Str), nil
	default:
		return lang.None(), errSignal(genericErr(fmt.Sprintf("you are trying to add %s and %s which is invalid", a, b)))
	}
}

// checkedAdd returns a+b and true, or 0 and false when the sum
// overflows an int64, in the style of the teacher's safeconv
// range-checked conversions.
func checkedAdd(a, b int64) (int64, bool) {
	sum := a + b
	if b > 0 && sum < a {
		return 0, false
	}
	if b < 0 && sum > a {
		return 0, false
	}
	return sum, true
}

func (m *Machine) evalEqual(call *lang.FunCall) (lang.Value, *Signal) {
	a, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	b, sig := m.evalExpr(call.Args[1])
	if sig != nil {
		return lang.None(), sig
	}

	switch {
	case a.IsInt() && b.IsInt():
		return boolInt(a.Int == b.Int), nil
	case a.IsStr() && b.IsStr():
		return boolInt(a.Str == b.Str), nil
	default:
		return lang.None(), errSignal(genericErr(fmt.Sprintf("you are trying to compare %s and %s which is invalid", a, b)))
	}
}

func boolInt(b bool) lang.Value {
	if b {
		return lang.Int(1)
	}
	return lang.Int(0)
}

func (m *Machine) evalExtract(call *lang.FunCall) (lang.Value, *Signal) {
	s, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	idx, sig := m.evalExpr(call.Args[1])
	if sig != nil {
		return lang.None(), sig
	}

	if !s.IsStr() || !idx.IsInt() {
		return lang.None(), errSignal(genericErr(fmt.Sprintf("you are trying to extract from %s using index %s which is invalid", s, idx)))
	}

	runes := []rune(s.Str)
	if idx.Int < 0 || idx.Int >= int64(len(runes)) {
		return lang.Str(""), nil
	}
	return lang.Str(string(runes[idx.Int])), nil
}

func (m *Machine) evalText(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	if !v.IsInt() {
		return lang.None(), errSignal(typeErr(lang.KindInt, v))
	}
	return lang.Str(strconv.FormatInt(v.Int, 10)), nil
}

func (m *Machine) evalNumber(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	if !v.IsStr() {
		return lang.None(), errSignal(typeErr(lang.KindStr, v))
	}
	n, err := strconv.ParseInt(v.Str, 10, 64)
	if err != nil {
		return lang.None(), errSignal(valueErr(v, fmt.Sprintf("cannot convert %s to an Int", v)))
	}
	return lang.Int(n), nil
}

func (m *Machine) evalConvert(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}

	switch v.Kind {
	case lang.KindStr:
		if utf8.RuneCountInString(v.Str) != 1 {
			return lang.None(), errSignal(valueErr(v, fmt.Sprintf("the Str should have exactly 1 char, got %d", utf8.RuneCountInString(v.Str))))
		}
		r, _ := utf8.DecodeRuneInString(v.Str)
		return lang.Int(int64(r)), nil

	case lang.KindInt:
		if !validRune(v.Int) {
			return lang.None(), errSignal(valueErr(v, fmt.Sprintf("cannot convert Int %d to a char", v.Int)))
		}
		return lang.Str(string(rune(v.Int))), nil

	default:
		return lang.None(), errSignal(valueErr(v, "cannot convert None value"))
	}
}

func validRune(n int64) bool {
	if n < 0 || n > 0x10FFFF {
		return false
	}
	if n >= 0xD800 && n <= 0xDFFF {
		return false // surrogate range, not a valid scalar value
	}
	return true
}

func (m *Machine) evalThrowError(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}

	var text string
	switch v.Kind {
	case lang.KindStr:
		text = v.Str
	case lang.KindInt:
		text = strconv.FormatInt(v.Int, 10)
	default:
		text = ""
	}

	err := genericErr(text)
	err.Note = fmt.Sprintf("raised by `%s:`", call.Fun)
	return lang.None(), errSignal(err)
}

func (m *Machine) evalEmptySlot() (lang.Value, *Signal) {
	for n := int64(0); n >= 0; n++ {
		if _, taken := m.Slots[n]; !taken {
			return lang.Int(n), nil
		}
	}
	return lang.None(), errSignal(noSlotErr())
}

func (m *Machine) evalPrint(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	_ = m.Stdout(v.Text() + "\n")
	return lang.None(), nil
}

func (m *Machine) evalWrite(call *lang.FunCall) (lang.Value, *Signal) {
	v, sig := m.evalExpr(call.Args[0])
	if sig != nil {
		return lang.None(), sig
	}
	_ = m.Stdout(v.Text())
	return lang.None(), nil
}

func (m *Machine) evalInput() (lang.Value, *Signal) {
	s, err := m.Stdin()
	if err != nil {
		return lang.None(), errSignal(genericErr("failed to receive an input"))
	}
	return lang.Str(strings.TrimSpace(s)), nil
}
