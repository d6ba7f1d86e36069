package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		// Token table
		{"Empty String", "", 0, true},
		{"Literal false", "false", 0, true},
		{"n/a", "n/a", 0, true},
		{"No", "No", 0, true},
		{"NaN token", "NaN", 0, true},
		{"Literal true", "true", 1, true},
		{"Yes", "Yes", 1, true},

		// Booleans
		{"Bool false", false, 0, true},
		{"Bool true", true, 1, true},

		// Numbers
		{"Int", 7, 7, true},
		{"Int64", int64(-3), -3, true},
		{"Float", 3.5, 3.5, true},
		{"Numeric String", "432", 432, true},
		{"Decimal String", "3.5", 3.5, true},
		{"Negative String", "-2", -2, true},

		// Not coercible
		{"Free Text", "Select 2 Plus", 0, false},
		{"Nil", nil, 0, false},
		{"Lowercase yes is not a token", "yes", 0, false},
		{"Lowercase no is not a token", "no", 0, false},
		{"Infinity String", "+Inf", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := Number(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, n)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	v := Canonical("Yes")
	assert.True(t, v.IsNum)
	assert.Equal(t, 1.0, v.Num)

	v = Canonical("Select 2")
	assert.False(t, v.IsNum)
	assert.Equal(t, "Select 2", v.Token)
	assert.True(t, v.Valid())

	v = Canonical(nil)
	assert.False(t, v.Valid())
}

func TestValueOrdering(t *testing.T) {
	a, b := Canonical(2), Canonical(10)
	assert.True(t, a.Less(b), "numeric pairs order numerically, not lexically")

	c, d := Canonical("Dolby"), Canonical("THX")
	assert.True(t, c.Less(d))

	// Mixed pairs fall back to lexicographic on string form.
	e, f := Canonical(100), Canonical("DTS")
	assert.True(t, e.Less(f))
}

func TestValueKeyDistinct(t *testing.T) {
	// The numeric 1 and the token "1"... the token also parses as a
	// number, so both collapse to the same canonical value.
	assert.Equal(t, Canonical("1").Key(), Canonical(1).Key())
	// But a genuine token never collides with a number's key.
	assert.NotEqual(t, Canonical("THX Select").Key(), Canonical(0).Key())
}
