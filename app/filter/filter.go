// Package filter narrows the review dataset the way the chart page's
// filter controls do: price range, rating range, and a free-text
// query. Text matching runs over an in-memory search index; nothing is
// written to disk.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/meermanr/whathifi/app/review"
)

// ErrNoIndex is returned when a Filter carries a text query but Apply
// was given no index to run it against.
var ErrNoIndex = errors.New("filter: text query requires a text index")

// Filter is one set of control values. Zero bounds are unbounded; an
// empty Query disables text matching.
type Filter struct {
	MinPrice  int
	MaxPrice  int
	MinRating int
	MaxRating int
	Query     string
}

// Apply returns the subset of reviews matching every set control. idx
// may be nil when Query is empty.
func (f Filter) Apply(reviews []review.Review, idx *TextIndex) ([]review.Review, error) {
	var hits map[string]bool
	if f.Query != "" {
		if idx == nil {
			return nil, ErrNoIndex
		}
		var err error
		hits, err = idx.Search(f.Query, len(reviews))
		if err != nil {
			return nil, fmt.Errorf("text search failed: %w", err)
		}
	}

	var out []review.Review
	for _, r := range reviews {
		if f.MinPrice > 0 && r.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && r.Price > f.MaxPrice {
			continue
		}
		if f.MinRating > 0 && r.Rating < f.MinRating {
			continue
		}
		if f.MaxRating > 0 && r.Rating > f.MaxRating {
			continue
		}
		if hits != nil && !hits[docID(r)] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// String renders the filter for logging and cache keys.
func (f Filter) String() string {
	return fmt.Sprintf("price[%d,%d] rating[%d,%d] q=%q",
		f.MinPrice, f.MaxPrice, f.MinRating, f.MaxRating, f.Query)
}

// TextIndex is an in-memory full-text index over review names and spec
// text.
type TextIndex struct {
	idx bleve.Index
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := mapping.NewIndexMapping()
	docMapping := mapping.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", mapping.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("spec", mapping.NewTextFieldMapping())
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// NewTextIndex indexes the given reviews in memory.
func NewTextIndex(reviews []review.Review) (*TextIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	for _, r := range reviews {
		doc := map[string]any{"name": r.Name, "spec": specText(r.Spec)}
		if err := idx.Index(docID(r), doc); err != nil {
			idx.Close()
			return nil, fmt.Errorf("failed to index %s: %w", r.Name, err)
		}
	}
	return &TextIndex{idx: idx}, nil
}

// Search returns the document IDs matching query.
func (t *TextIndex) Search(query string, limit int) (map[string]bool, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := t.idx.Search(req)
	if err != nil {
		return nil, err
	}
	hits := make(map[string]bool, len(res.Hits))
	for _, hit := range res.Hits {
		hits[hit.ID] = true
	}
	return hits, nil
}

// Close releases the index.
func (t *TextIndex) Close() error {
	return t.idx.Close()
}

func docID(r review.Review) string {
	if r.URL != "" {
		return r.URL
	}
	return r.Name
}

// specText flattens a spec map into one searchable string of headings
// and their textual values.
func specText(spec map[string]any) string {
	parts := make([]string, 0, len(spec)*2)
	for k, v := range spec {
		parts = append(parts, k)
		if s, ok := v.(string); ok {
			parts = append(parts, s)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
