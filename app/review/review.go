// Package review holds the scraped WhatHiFi review dataset: the record
// model, the JSONL loader, the spec-value cleaning rules, and the
// aggregations the charts are built from.
package review

import (
	"regexp"
	"sort"
	"strconv"
)

// Review is one scraped product review. Spec holds the tech-specs
// table of the review page: a heading-to-value map whose values are a
// mix of booleans, numbers and free-text tokens.
type Review struct {
	URL    string         `json:"URL"`
	Name   string         `json:"name"`
	Price  int            `json:"price"`
	Rating int            `json:"rating"`
	Spec   map[string]any `json:"spec"`
}

// Spec headings whose values are kept verbatim: their raw tokens carry
// meaning the cleaning rules would destroy ("THX" has graded
// certification levels, not a plain yes/no).
var uninterpretedHeadings = map[string]bool{
	"THX":           true,
	"Video scaling": true,
}

var digitRuns = regexp.MustCompile(`\d+`)

// CleanSpecValue applies the scraper's value-normalization rules to a
// raw spec cell: "Yes"/"No" become booleans, digit strings become
// ints, decimal strings become floats, and free text is reduced to its
// single embedded number when there is exactly one. Values under an
// uninterpreted heading pass through untouched.
func CleanSpecValue(heading string, v any) any {
	if uninterpretedHeadings[heading] {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "No":
		return false
	case "Yes":
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	runs := digitRuns.FindAllString(s, -1)
	switch len(runs) {
	case 0:
		return 0
	case 1:
		return runs[0]
	default:
		return s
	}
}

// SpecHeadings returns r's spec headings in sorted order, paired
// positionally with SpecValues.
func SpecHeadings(r Review) []string {
	hs := make([]string, 0, len(r.Spec))
	for h := range r.Spec {
		hs = append(hs, h)
	}
	sort.Strings(hs)
	return hs
}

// SpecValues returns r's spec values in SpecHeadings order.
func SpecValues(r Review) []any {
	hs := SpecHeadings(r)
	vs := make([]any, len(hs))
	for i, h := range hs {
		vs[i] = r.Spec[h]
	}
	return vs
}
