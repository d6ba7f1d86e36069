package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meermanr/whathifi/app/review"
)

func testReviews() []review.Review {
	return []review.Review{
		{URL: "u1", Name: "Onkyo TX-NR609", Price: 500, Rating: 5,
			Spec: map[string]any{"THX": "Select 2 Plus", "AirPlay": false}},
		{URL: "u2", Name: "Yamaha RX-V673", Price: 500, Rating: 4,
			Spec: map[string]any{"THX": "No", "AirPlay": true}},
		{URL: "u3", Name: "Denon AVR-4520", Price: 2500, Rating: 5,
			Spec: map[string]any{"THX": "No"}},
	}
}

func TestApplyRanges(t *testing.T) {
	reviews := testReviews()

	testCases := []struct {
		name     string
		f        Filter
		expected []string
	}{
		{"No Filter", Filter{}, []string{"Onkyo TX-NR609", "Yamaha RX-V673", "Denon AVR-4520"}},
		{"Max Price", Filter{MaxPrice: 600}, []string{"Onkyo TX-NR609", "Yamaha RX-V673"}},
		{"Min Price", Filter{MinPrice: 1000}, []string{"Denon AVR-4520"}},
		{"Min Rating", Filter{MinRating: 5}, []string{"Onkyo TX-NR609", "Denon AVR-4520"}},
		{"Max Rating", Filter{MaxRating: 4}, []string{"Yamaha RX-V673"}},
		{"Combined", Filter{MaxPrice: 600, MinRating: 5}, []string{"Onkyo TX-NR609"}},
		{"No Matches", Filter{MinPrice: 9999}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.f.Apply(reviews, nil)
			require.NoError(t, err)
			var names []string
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func TestApplyTextQuery(t *testing.T) {
	reviews := testReviews()
	idx, err := NewTextIndex(reviews)
	require.NoError(t, err)
	defer idx.Close()

	got, err := Filter{Query: "onkyo"}.Apply(reviews, idx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Onkyo TX-NR609", got[0].Name)

	// Spec text is searchable too.
	got, err = Filter{Query: "select"}.Apply(reviews, idx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Onkyo TX-NR609", got[0].Name)

	// Text and range controls compose.
	got, err = Filter{Query: "thx", MinPrice: 1000}.Apply(reviews, idx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Denon AVR-4520", got[0].Name)
}

func TestApplyQueryWithoutIndex(t *testing.T) {
	_, err := Filter{Query: "onkyo"}.Apply(testReviews(), nil)
	assert.ErrorIs(t, err, ErrNoIndex)
}
