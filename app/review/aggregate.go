package review

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// DefaultPriceBandwidth is the price bucket width, in currency units,
// used when grouping punch-card counts.
const DefaultPriceBandwidth = 500

// PriceRange returns the minimum and maximum tested price across
// reviews. ok is false when there are no reviews.
func PriceRange(reviews []Review) (min, max int, ok bool) {
	if len(reviews) == 0 {
		return 0, 0, false
	}
	min, max = reviews[0].Price, reviews[0].Price
	for _, r := range reviews[1:] {
		if r.Price < min {
			min = r.Price
		}
		if r.Price > max {
			max = r.Price
		}
	}
	return min, max, true
}

// PriceSpread describes the price distribution of all products sharing
// one star rating.
type PriceSpread struct {
	Rating int
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// PriceSpreadByRating groups reviews by rating and summarizes each
// group's prices, sorted by ascending rating.
func PriceSpreadByRating(reviews []Review) []PriceSpread {
	byRating := make(map[int][]float64)
	for _, r := range reviews {
		byRating[r.Rating] = append(byRating[r.Rating], float64(r.Price))
	}

	spreads := make([]PriceSpread, 0, len(byRating))
	for rating, prices := range byRating {
		min, max := stats.Bounds(prices)
		sd := stats.Sample{Xs: prices}.StdDev()
		if math.IsNaN(sd) {
			sd = 0 // single-product rating groups have no spread
		}
		spreads = append(spreads, PriceSpread{
			Rating: rating,
			Count:  len(prices),
			Mean:   stats.Mean(prices),
			Min:    min,
			Max:    max,
			StdDev: sd,
		})
	}
	sort.Slice(spreads, func(i, j int) bool { return spreads[i].Rating < spreads[j].Rating })
	return spreads
}

// FrequencyPoint is one punch-card bubble: the number of reviewed
// products with a given rating in a given price bucket.
type FrequencyPoint struct {
	Rating int
	Price  int // bucket upper bound: price rounded up to the bandwidth
	Count  int
}

// RatingPriceFrequency counts reviews grouped by (rating, price
// rounded up to bandwidth). A non-positive bandwidth falls back to
// DefaultPriceBandwidth. Points come back sorted by rating then price.
func RatingPriceFrequency(reviews []Review, bandwidth int) []FrequencyPoint {
	if bandwidth <= 0 {
		bandwidth = DefaultPriceBandwidth
	}
	type key struct{ rating, price int }
	counts := make(map[key]int)
	for _, r := range reviews {
		bucket := int(math.Ceil(float64(r.Price)/float64(bandwidth))) * bandwidth
		counts[key{r.Rating, bucket}]++
	}

	points := make([]FrequencyPoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, FrequencyPoint{Rating: k.rating, Price: k.price, Count: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Rating != points[j].Rating {
			return points[i].Rating < points[j].Rating
		}
		return points[i].Price < points[j].Price
	})
	return points
}

// DistinctSpecHeadings returns the union of spec headings observed
// across all reviews, sorted.
func DistinctSpecHeadings(reviews []Review) []string {
	seen := make(map[string]bool)
	var headings []string
	for _, r := range reviews {
		for h := range r.Spec {
			if !seen[h] {
				seen[h] = true
				headings = append(headings, h)
			}
		}
	}
	sort.Strings(headings)
	return headings
}
