// Package points defines the per-player delta submitted with a round and the
// policy that turns it into an integer.
//
// A delta arrives as arbitrary JSON. It is stored verbatim so rounds echo back
// exactly what was submitted, and coerced with Int when totals are updated:
//
//   - numbers are printed the way a JavaScript number prints and the integer
//     prefix of that text is taken (5.9 -> 5, -5.9 -> -5, 1e21 -> 1);
//   - strings skip leading whitespace, accept a sign and a 0x prefix, and take
//     the longest digit prefix ("3" -> 3, " 12abc" -> 12, "0x1A" -> 26);
//   - everything else (null, missing, booleans, arrays, objects, text without
//     a digit prefix) is 0.
//
// Results outside the int64 range saturate, and so do running totals summed
// with Add.
package points

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidJSON is returned by FromRaw for malformed input.
var ErrInvalidJSON = errors.New("points: invalid JSON value")

// Kind classifies the submitted JSON value.
type Kind int

// Value kinds.
const (
	KindMissing Kind = iota
	KindNumber
	KindString
	KindOther
)

// JavaScript switches Number#toString to exponent notation outside this range.
const (
	minPlainMagnitude = 1e-6
	maxPlainMagnitude = 1e21
)

var nullLiteral = []byte("null")

// Value is one submitted point delta. The zero Value is missing.
type Value struct {
	raw json.RawMessage
}

// Int returns a Value holding the JSON number n.
func Int(n int64) Value {
	return Value{raw: strconv.AppendInt(nil, n, 10)}
}

// String returns a Value holding the JSON string s.
func String(s string) Value {
	b, _ := json.Marshal(s) //nolint:errchkjson // strings always marshal
	return Value{raw: b}
}

// Missing returns a Value that coerces to zero and serializes as null.
func Missing() Value {
	return Value{}
}

// FromRaw wraps an already encoded JSON value.
func FromRaw(b []byte) (Value, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || !json.Valid(b) {
		return Value{}, ErrInvalidJSON
	}
	return Value{raw: append(json.RawMessage(nil), b...)}, nil
}

// Kind reports what JSON type the value holds.
func (v Value) Kind() Kind {
	if len(v.raw) == 0 || bytes.Equal(v.raw, nullLiteral) {
		return KindMissing
	}
	switch c := v.raw[0]; {
	case c == '"':
		return KindString
	case c == '-' || (c >= '0' && c <= '9'):
		return KindNumber
	default:
		return KindOther
	}
}

// IsMissing reports whether the value is null or absent.
func (v Value) IsMissing() bool {
	return v.Kind() == KindMissing
}

// Raw returns the JSON text of the value, "null" when missing.
func (v Value) Raw() json.RawMessage {
	if len(v.raw) == 0 {
		return append(json.RawMessage(nil), nullLiteral...)
	}
	return append(json.RawMessage(nil), v.raw...)
}

// Int coerces the value to an integer delta.
func (v Value) Int() int64 {
	switch v.Kind() {
	case KindNumber:
		f, err := strconv.ParseFloat(string(v.raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0
		}
		return numberToInt(f)
	case KindString:
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return 0
		}
		return parseIntPrefix(s)
	default:
		return 0
	}
}

// Clone returns a copy that shares no memory with v.
func (v Value) Clone() Value {
	if v.raw == nil {
		return Value{}
	}
	return Value{raw: append(json.RawMessage(nil), v.raw...)}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The input is kept verbatim.
func (v *Value) UnmarshalJSON(b []byte) error {
	parsed, err := FromRaw(b)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Add returns total+delta, saturating at the int64 bounds instead of
// wrapping.
func Add(total, delta int64) int64 {
	switch {
	case delta > 0 && total > math.MaxInt64-delta:
		return math.MaxInt64
	case delta < 0 && total < math.MinInt64-delta:
		return math.MinInt64
	default:
		return total + delta
	}
}

func numberToInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	a := math.Abs(f)
	if a == 0 {
		return 0
	}
	if a < minPlainMagnitude || a >= maxPlainMagnitude {
		// Exponent form has a single digit before the point.
		s := strconv.FormatFloat(a, 'e', -1, 64)
		d := int64(s[0] - '0')
		if f < 0 {
			return -d
		}
		return d
	}
	t := math.Trunc(f)
	switch {
	case t >= math.MaxInt64:
		return math.MaxInt64
	case t <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(t)
	}
}

func parseIntPrefix(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

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
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}

	u, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		u = math.MaxUint64
	}
	if neg {
		if u > math.MaxInt64 {
			return math.MinInt64
		}
		return -int64(u)
	}
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')):
		return true
	default:
		return false
	}
}
