package chart

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/meermanr/whathifi/app/review"
	"github.com/meermanr/whathifi/app/vizcolumns"
)

// CachedClassifier memoizes column classification per dataset key. The
// classifier itself is pure; whether and how long to reuse a result
// across update cycles is this caller's policy, keyed by whatever
// identifies the dataset (file path plus filter state works well).
type CachedClassifier struct {
	pal   vizcolumns.Palette
	cache *cache.Cache
}

// NewCachedClassifier builds a wrapper whose entries expire after ttl.
func NewCachedClassifier(pal vizcolumns.Palette, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{
		pal:   pal,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Classify returns the cached classification for key, computing and
// storing it on first use.
func (cc *CachedClassifier) Classify(key string, reviews []review.Review) (map[string]*vizcolumns.Column, error) {
	if cached, found := cc.cache.Get(key); found {
		return cached.(map[string]*vizcolumns.Column), nil
	}
	columns, err := vizcolumns.Classify(reviews, review.SpecHeadings, review.SpecValues, cc.pal)
	if err != nil {
		return nil, err
	}
	cc.cache.Set(key, columns, cache.DefaultExpiration)
	return columns, nil
}
