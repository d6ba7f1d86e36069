package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanSpecValue(t *testing.T) {
	testCases := []struct {
		name     string
		heading  string
		input    any
		expected any
	}{
		{"No becomes false", "Dolby TrueHD", "No", false},
		{"Yes becomes true", "Dolby TrueHD", "Yes", true},
		{"Digits become int", "HDMI inputs", "6", 6},
		{"Decimal becomes float", "Weight", "9.5", 9.5},
		{"Single embedded number", "Power output", "160W", "160"},
		{"Several numbers keep original", "Power output", "200W into 8 ohms, two channels driven", "200W into 8 ohms, two channels driven"},
		{"No digits at all", "Remote", "Universal", 0},
		{"THX is never interpreted", "THX", "No", "No"},
		{"Video scaling is never interpreted", "Video scaling", "Yes", "Yes"},
		{"Non-string passes through", "HDMI inputs", 6, 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanSpecValue(tc.heading, tc.input))
		})
	}
}

func TestLoadJSONL(t *testing.T) {
	reviews, err := LoadJSONL("testdata/reviews.jsonl")
	require.NoError(t, err)
	require.Len(t, reviews, 6)

	assert.Equal(t, "Onkyo TX-NR609", reviews[0].Name)
	assert.Equal(t, 500, reviews[0].Price)
	assert.Equal(t, 5, reviews[0].Rating)

	// Cleaning ran at load: "6" became an int, "Yes" a bool, "160W"
	// its embedded number, and the THX grade stayed a raw token.
	assert.Equal(t, 6, reviews[0].Spec["HDMI inputs"])
	assert.Equal(t, true, reviews[0].Spec["Dolby TrueHD"])
	assert.Equal(t, "160", reviews[0].Spec["Power output"])
	assert.Equal(t, "Select 2 Plus", reviews[0].Spec["THX"])
}

func TestReadJSONLSkipsBadLines(t *testing.T) {
	input := `{"name": "Onkyo TX-NR609", "price": 500, "rating": 5}
not json at all
{"name": "Yamaha RX-V673", "price": 400, "rating": 4}`
	reviews, err := ReadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestHeadingDotUnescape(t *testing.T) {
	reviews, err := LoadJSONL("testdata/reviews.jsonl")
	require.NoError(t, err)

	headings := DistinctSpecHeadings(reviews)
	assert.Contains(t, headings, "Resolution. upscaling")
	assert.NotContains(t, headings, "Resolution&#46; upscaling")
}

func TestSpecAccessorsPaired(t *testing.T) {
	r := Review{Spec: map[string]any{"THX": "No", "AirPlay": true, "HDMI inputs": 6}}
	hs, vs := SpecHeadings(r), SpecValues(r)
	require.Equal(t, len(hs), len(vs))
	assert.Equal(t, []string{"AirPlay", "HDMI inputs", "THX"}, hs)
	for i, h := range hs {
		assert.Equal(t, r.Spec[h], vs[i])
	}
}
