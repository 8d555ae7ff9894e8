// Package coerce implements the loose value coercion the route handlers rely
// on: integer parsing that yields NaN instead of failing, numeric and string
// conversion of decoded JSON values, and number rendering that matches what
// browsers and JSON clients expect from a JavaScript backend.
package coerce

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Number is a float64 with JavaScript rendering rules.
// NaN and the infinities are valid values and are never rejected.
type Number float64

// NaN returns the not-a-number marker.
func NaN() Number { return Number(math.NaN()) }

// Inf returns positive infinity when sign >= 0, negative infinity otherwise.
func Inf(sign int) Number { return Number(math.Inf(sign)) }

// IsNaN reports whether n is the not-a-number marker.
func (n Number) IsNaN() bool { return math.IsNaN(float64(n)) }

// IsFinite reports whether n is neither NaN nor infinite.
func (n Number) IsFinite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Truthy reports whether n is truthy in the `x || fallback` sense: NaN and
// both zeroes are falsy.
func (n Number) Truthy() bool {
	return !n.IsNaN() && n != 0
}

// Float64 returns n as a plain float64.
func (n Number) Float64() float64 { return float64(n) }

// String renders n the way Number.prototype.toString does.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return string(appendFloat(nil, f))
}

// MarshalJSON renders n the way JSON.stringify does: non-finite values
// become null.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	if f == 0 {
		return []byte("0"), nil
	}
	return appendFloat(nil, f), nil
}

// appendFloat uses the shortest round-trip digits with the exponent cutoffs
// of ECMAScript number-to-string conversion.
func appendFloat(b []byte, f float64) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// e-07 -> e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

// ParseInt mirrors the global parseInt with no radix: leading whitespace is
// skipped, an optional sign and 0x prefix are honoured and the longest valid
// digit prefix is converted. Input without digits yields NaN.
func ParseInt(s string) Number {
	s = strings.TrimLeftFunc(s, isSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return NaN()
	}
	digits := s[:end]

	var f float64
	if base == 10 {
		// Out-of-range digit strings come back as ±Inf alongside ErrRange.
		f, _ = strconv.ParseFloat(digits, 64)
	} else {
		f = parseRadixExact(digits, base)
	}
	if neg {
		f = -f
	}
	return Number(f)
}

// parseRadixExact converts valid digits in base, rounding to float64 once.
func parseRadixExact(digits string, base int) float64 {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// ParseOptionalInt is ParseInt for a value that may be absent.
func ParseOptionalInt(s string, ok bool) Number {
	if !ok {
		return NaN()
	}
	return ParseInt(s)
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return math.MaxInt
}

// isSpace matches the ECMAScript WhiteSpace and LineTerminator sets.
func isSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
