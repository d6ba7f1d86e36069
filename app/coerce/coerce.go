// Package coerce normalizes the messy values found in scraped review
// specs ("Yes", "No", "n/a", "432", "Select 2 Plus", ...) into numbers
// where possible, and provides the canonical comparable form used to
// build axis domains and column value sets.
package coerce

import (
	"math"
	"strconv"
)

// tokenTable maps the symbolic tokens that appear in review specs to
// their numeric meaning. Tokens not listed here go through a numeric
// parse and fall back to being kept as-is.
var tokenTable = map[string]float64{
	"":      0,
	"false": 0,
	"n/a":   0,
	"No":    0,
	"NaN":   0,
	"true":  1,
	"Yes":   1,
}

// Number attempts to coerce v to a finite number. The second return
// value reports whether the coercion succeeded.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case float32:
		return Number(float64(t))
	case string:
		if n, ok := tokenTable[t]; ok {
			return n, true
		}
		n, err := strconv.ParseFloat(t, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Value is the canonical comparable form of an accessor result: either
// a finite number, or the original string token when no numeric
// interpretation exists.
type Value struct {
	Num   float64
	Token string
	IsNum bool
}

// Canonical converts an accessor result into its canonical Value.
// Anything Number understands becomes numeric; strings without a
// numeric interpretation keep their token; everything else (structs,
// slices, nil) yields a non-numeric Value with an empty token and
// should be rejected by the caller via Valid.
func Canonical(v any) Value {
	if n, ok := Number(v); ok {
		return Value{Num: n, IsNum: true}
	}
	if s, ok := v.(string); ok {
		return Value{Token: s}
	}
	return Value{}
}

// Valid reports whether v carries usable content: a number, or a
// non-empty token.
func (v Value) Valid() bool {
	return v.IsNum || v.Token != ""
}

// String renders the value for axis labels and set keys. Numbers use
// the shortest representation that round-trips.
func (v Value) String() string {
	if v.IsNum {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Token
}

// Key returns a string that is unique per distinct value, suitable for
// deduplication. Numbers and tokens cannot collide.
func (v Value) Key() string {
	if v.IsNum {
		return "n:" + v.String()
	}
	return "t:" + v.Token
}

// Less orders two values: numerically when both are numeric, else
// lexicographically on their string form. This is the natural domain
// order used by axes and column scales.
func (v Value) Less(o Value) bool {
	if v.IsNum && o.IsNum {
		return v.Num < o.Num
	}
	return v.String() < o.String()
}
