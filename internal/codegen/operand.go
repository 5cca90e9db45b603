package codegen

import "strconv"

// isIntLiteral reports whether an IR operand's textual form is a plain
// integer immediate (spec.md §4.5: "matched by -?\d+"). Such operands
// are used directly as immediates and never consume a stack slot.
func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isNumericLiteral additionally recognizes float literal text
// (spec.md §4.4's Num lowering emits the decimal text of a float
// literal the same way it emits an int's). This compiler performs no
// real IEEE-754 arithmetic at the machine level — every BinOp lowers
// to the same general-purpose-register add/sub/imul/idiv regardless
// of declared type (spec.md §4.5's table never branches on type) — so
// a float immediate is materialized as its integer truncation rather
// than consuming a stack slot the way a named operand would.
func isNumericLiteral(s string) bool {
	if isIntLiteral(s) {
		return true
	}
	// ParseFloat alone also accepts names such as "inf" or "nan", so a
	// literal must start with a digit (after an optional '-').
	d := s
	if d != "" && d[0] == '-' {
		d = d[1:]
	}
	if d == "" || d[0] < '0' || d[0] > '9' {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// intImmediate renders an operand known to satisfy isNumericLiteral as
// a plain decimal integer immediate, truncating any fractional part.
func intImmediate(s string) string {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, _ := strconv.ParseFloat(s, 64)
	return strconv.FormatInt(int64(f), 10)
}

// isStringLabel reports whether an operand names an interned string
// literal (spec.md §3: "labels follow ... str0, str1, ...").
func isStringLabel(s string) bool {
	return len(s) > 3 && s[:3] == "str" && isIntLiteral(s[3:])
}
