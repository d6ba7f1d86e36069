package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReviews() []Review {
	return []Review{
		{Name: "A", Price: 500, Rating: 5},
		{Name: "B", Price: 500, Rating: 5},
		{Name: "C", Price: 480, Rating: 4},
		{Name: "D", Price: 400, Rating: 3},
		{Name: "E", Price: 2500, Rating: 5},
	}
}

func TestPriceRange(t *testing.T) {
	min, max, ok := PriceRange(sampleReviews())
	require.True(t, ok)
	assert.Equal(t, 400, min)
	assert.Equal(t, 2500, max)

	_, _, ok = PriceRange(nil)
	assert.False(t, ok)
}

func TestPriceSpreadByRating(t *testing.T) {
	spreads := PriceSpreadByRating(sampleReviews())
	require.Len(t, spreads, 3)

	assert.Equal(t, 3, spreads[0].Rating)
	assert.Equal(t, 1, spreads[0].Count)
	assert.Equal(t, 400.0, spreads[0].Mean)
	assert.Equal(t, 0.0, spreads[0].StdDev, "single product has no spread")

	assert.Equal(t, 5, spreads[2].Rating)
	assert.Equal(t, 3, spreads[2].Count)
	assert.Equal(t, 500.0, spreads[2].Min)
	assert.Equal(t, 2500.0, spreads[2].Max)
	assert.InDelta(t, 1166.67, spreads[2].Mean, 0.01)
	assert.Greater(t, spreads[2].StdDev, 0.0)
}

func TestRatingPriceFrequency(t *testing.T) {
	points := RatingPriceFrequency(sampleReviews(), 500)

	// Prices round up to the bucket bound: 400 and 480 both land in
	// the 500 bucket; 2500 stays at 2500.
	require.Len(t, points, 4)
	assert.Equal(t, FrequencyPoint{Rating: 3, Price: 500, Count: 1}, points[0])
	assert.Equal(t, FrequencyPoint{Rating: 4, Price: 500, Count: 1}, points[1])
	assert.Equal(t, FrequencyPoint{Rating: 5, Price: 500, Count: 2}, points[2])
	assert.Equal(t, FrequencyPoint{Rating: 5, Price: 2500, Count: 1}, points[3])

	total := 0
	for _, p := range points {
		total += p.Count
	}
	assert.Equal(t, len(sampleReviews()), total)
}

func TestRatingPriceFrequencyDefaultBandwidth(t *testing.T) {
	points := RatingPriceFrequency(sampleReviews(), 0)
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.Zero(t, p.Price%DefaultPriceBandwidth)
	}
}

func TestDistinctSpecHeadings(t *testing.T) {
	reviews := []Review{
		{Spec: map[string]any{"THX": "No", "HDMI inputs": 6}},
		{Spec: map[string]any{"AirPlay": true, "THX": "No"}},
	}
	assert.Equal(t, []string{"AirPlay", "HDMI inputs", "THX"}, DistinctSpecHeadings(reviews))
}
