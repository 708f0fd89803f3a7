// Package radix parses integers and floating-point numbers written in an
// arbitrary base between 2 and 36. Failures are reported as a false ok
// rather than an error: malformed text is an expected outcome.
package radix

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	Min     = 2
	Max     = 36
	Decimal = 10
)

func Valid(radix int) bool {
	return Min <= radix && radix <= Max
}

// digitValue maps 0-9 and a-z / A-Z to 0..35. Anything else maps to 36,
// which is out of range for every radix.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return Max
}

func splitSign(s string) (string, bool) {
	if s == "" {
		return s, false
	}
	switch s[0] {
	case '+':
		return s[1:], false
	case '-':
		return s[1:], true
	}
	return s, false
}

// ParseInt parses an optionally signed integer that fits in bitSize bits.
func ParseInt(s string, radix int, bitSize int) (int64, bool) {
	if !Valid(radix) || s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, radix, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseUint parses an unsigned integer. A leading '+' is accepted.
func ParseUint(s string, radix int, bitSize int) (uint64, bool) {
	if !Valid(radix) {
		return 0, false
	}
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, radix, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat parses a floating-point number. In base 10 the usual decimal
// grammar applies: sign, digits, optional fraction and optional exponent.
// In any other base only "[sign] digits [. digits]" is accepted, since
// 'e' may well be a digit there.
//
// Values that overflow bitSize are rejected.
func ParseFloat(s string, radix int, bitSize int) (float64, bool) {
	if !Valid(radix) || (bitSize != 32 && bitSize != 64) {
		return 0, false
	}
	if radix == Decimal {
		return parseDecimalFloat(s, bitSize)
	}
	return parseRadixFloat(s, radix, bitSize)
}

func parseDecimalFloat(s string, bitSize int) (float64, bool) {
	digits, seenDot, seenExp := 0, false, false
	body, _ := splitSign(s)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case '0' <= c && c <= '9':
			if !seenExp {
				digits++
			}
		case c == '.':
			if seenDot || seenExp {
				return 0, false
			}
			seenDot = true
		case c == 'e' || c == 'E':
			if seenExp || digits == 0 {
				return 0, false
			}
			seenExp = true
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-') {
				i++
			}
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseRadixFloat(s string, radix int, bitSize int) (float64, bool) {
	body, negative := splitSign(s)
	intPart, fracPart, _ := strings.Cut(body, ".")
	mantissa := intPart + fracPart
	if mantissa == "" {
		return 0, false
	}
	for i := 0; i < len(mantissa); i++ {
		if digitValue(mantissa[i]) >= radix {
			return 0, false
		}
	}

	m, ok := new(big.Int).SetString(mantissa, radix)
	if !ok {
		return 0, false
	}
	const prec = 256
	num := new(big.Float).SetPrec(prec).SetInt(m)
	if len(fracPart) > 0 {
		scale := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(len(fracPart))), nil)
		num.Quo(num, new(big.Float).SetPrec(prec).SetInt(scale))
	}
	if negative {
		num.Neg(num)
	}

	var v float64
	if bitSize == 32 {
		f, _ := num.Float32()
		v = float64(f)
	} else {
		v, _ = num.Float64()
	}
	if math.IsInf(v, 0) {
		return 0, false
	}
	if negative && v == 0 {
		v = math.Copysign(0, -1)
	}
	return v, true
}

// StripGrouping removes every occurrence of sep, such as the commas in
// "2,147,483,647". A zero sep leaves s untouched.
func StripGrouping(s string, sep rune) string {
	if sep == 0 || !strings.ContainsRune(s, sep) {
		return s
	}
	return strings.ReplaceAll(s, string(sep), "")
}
