package syntax

import (
	"math"
	"strconv"
	"strings"
)

// Float returns the numeric value of a number literal.
// The second result is false for non-number literals and malformed text.
func (lit *BasicLit) Float() (float64, bool) {
	if lit.Kind != NumberLit {
		return 0, false
	}

	text := lit.Value
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch lower(rune(text[1])) {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			v, err := strconv.ParseUint(text[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(v), true
		}
	}

	// Legacy octal (010 == 8) is only recognized when every digit is octal.
	if len(text) > 1 && text[0] == '0' && !strings.ContainsAny(text, ".eE89") {
		v, err := strconv.ParseUint(text[1:], 8, 64)
		if err != nil {
			return 0, false
		}
		return float64(v), true
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// IsIntegral reports whether lit is a number literal with an integral,
// finite value: 5 and 5.0 are integral, 2.5 and 1e400 are not.
func (lit *BasicLit) IsIntegral() bool {
	v, ok := lit.Float()
	if !ok || math.IsInf(v, 0) || math.IsNaN(v) {
		return false
	}
	return v == math.Trunc(v)
}
