package coerce

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// Value is one field of a decoded JSON body. The zero Value is undefined,
// which is distinct from JSON null.
type Value struct {
	raw     any
	defined bool
}

// Undefined returns the value of a missing field.
func Undefined() Value { return Value{} }

// FromJSON wraps a value produced by encoding/json with UseNumber enabled.
func FromJSON(v any) Value { return Value{raw: v, defined: true} }

// Field returns obj[key], or Undefined when the key is absent.
func Field(obj map[string]any, key string) Value {
	v, ok := obj[key]
	if !ok {
		return Undefined()
	}
	return FromJSON(v)
}

// Defined reports whether the field was present.
func (v Value) Defined() bool { return v.defined }

// IsZero lets `omitzero` drop undefined fields from encoded responses.
func (v Value) IsZero() bool { return !v.defined }

// Number converts v with ToNumber semantics.
func (v Value) Number() Number {
	if !v.defined {
		return NaN()
	}
	switch x := v.raw.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return jsonNumber(x)
	case float64:
		return Number(x)
	case string:
		return StringToNumber(x)
	case []any:
		return StringToNumber(toString(x))
	}
	return NaN()
}

// String converts v with ToString semantics.
func (v Value) String() string {
	if !v.defined {
		return "undefined"
	}
	return toString(v.raw)
}

// MarshalJSON re-encodes the value with numbers normalised the way
// JSON.stringify prints them.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.defined {
		return []byte("null"), nil
	}
	return Marshal(normalize(v.raw))
}

// Marshal encodes v without HTML escaping and without a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func normalize(x any) any {
	switch x := x.(type) {
	case json.Number:
		return jsonNumber(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	}
	return x
}

func toString(x any) string {
	switch x := x.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return jsonNumber(x).String()
	case float64:
		return Number(x).String()
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = toString(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

func jsonNumber(n json.Number) Number {
	// The decoder only hands over valid literals; range errors saturate.
	f, _ := strconv.ParseFloat(string(n), 64)
	return Number(f)
}

// StringToNumber converts s with the StringNumericLiteral grammar: blank
// input is 0, Infinity and 0x/0o/0b literals are accepted, anything else
// that is not a decimal literal is NaN.
func StringToNumber(s string) Number {
	s = strings.TrimFunc(s, isSpace)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return Inf(1)
	case "-Infinity":
		return Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return NaN()
	}
	f, _ := strconv.ParseFloat(s, 64)
	return Number(f)
}

func parseRadix(digits string, base int) Number {
	for i := 0; i < len(digits); i++ {
		if digitValue(digits[i]) >= base {
			return NaN()
		}
	}
	return Number(parseRadixExact(digits, base))
}
