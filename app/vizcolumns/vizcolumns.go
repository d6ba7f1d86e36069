// Package vizcolumns infers a semantic kind for every column of the
// spec-sheet table view and builds the rendering rule that paints its
// cells: a presence indicator for boolean columns, a per-column heat
// color for numeric columns, and a letter code for categorical ones.
package vizcolumns

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/meermanr/whathifi/app/coerce"
)

// ErrNoRows is returned when there are no rows to classify.
var ErrNoRows = errors.New("vizcolumns: no rows to classify")

// RowShapeError reports a row whose headings and values sequences had
// different lengths, so they cannot be paired positionally.
type RowShapeError struct {
	Index    int
	Headings int
	Values   int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("vizcolumns: row %d has %d headings but %d values", e.Index, e.Headings, e.Values)
}

// Kind is the inferred semantic type of a column.
type Kind int

const (
	Boolean Kind = iota
	Numeric
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Numeric:
		return "numeric"
	default:
		return "categorical"
	}
}

// CellKind tells the table renderer what to draw in a cell.
type CellKind int

const (
	// CellBlank draws nothing.
	CellBlank CellKind = iota
	// CellIndicator draws a fixed-size presence mark.
	CellIndicator
	// CellFill fills the cell with Cell.Fill.
	CellFill
	// CellLetter draws Cell.Letter as a glyph.
	CellLetter
)

// Cell is the visual directive for one table cell.
type Cell struct {
	Kind   CellKind
	Fill   color.RGBA
	Letter string
}

// Palette holds the three stops of the numeric heat scale.
type Palette struct {
	Low     color.RGBA // the "danger" end, a column's minimum
	Neutral color.RGBA // the column median
	High    color.RGBA // the "good" end, a column's maximum
}

// DefaultPalette is red → amber → green.
func DefaultPalette() Palette {
	return Palette{
		Low:     color.RGBA{R: 0xd9, G: 0x2b, B: 0x2b, A: 0xff},
		Neutral: color.RGBA{R: 0xe8, G: 0xa8, B: 0x20, A: 0xff},
		High:    color.RGBA{R: 0x2e, G: 0x9e, B: 0x44, A: 0xff},
	}
}

// HeatScale colors a numeric column relative to its own distribution:
// stops at the observed minimum, median and maximum. The same raw
// value may therefore render differently in two different columns.
type HeatScale struct {
	Min, Median, Max float64
	pal              Palette
}

// Color maps v to the gradient. A degenerate column (min = median =
// max) is constant neutral; there is no zero-width division to hit.
func (h *HeatScale) Color(v float64) color.RGBA {
	if h.Min == h.Max {
		return h.pal.Neutral
	}
	switch {
	case v <= h.Min:
		return h.pal.Low
	case v >= h.Max:
		return h.pal.High
	case v == h.Median:
		return h.pal.Neutral
	case v < h.Median:
		if h.Median == h.Min {
			return h.pal.Neutral
		}
		return blend(h.pal.Low, h.pal.Neutral, (v-h.Min)/(h.Median-h.Min))
	default:
		if h.Max == h.Median {
			return h.pal.Neutral
		}
		return blend(h.pal.Neutral, h.pal.High, (v-h.Median)/(h.Max-h.Median))
	}
}

// blend linearly interpolates two sRGB colors channel-wise.
func blend(a, b color.RGBA, x float64) color.RGBA {
	blend8 := func(a, b uint8) uint8 {
		c := float64(a)*(1-x) + float64(b)*x
		if c <= 0 {
			return 0
		} else if c >= 255 {
			return 255
		}
		return uint8(c)
	}
	return color.RGBA{blend8(a.R, b.R), blend8(a.G, b.G), blend8(a.B, b.B), 0xff}
}

// LetterScale assigns successive uppercase letters to the distinct
// non-falsy values of a categorical column, in sorted order. Values
// that coerce to the falsy sentinel 0 (an explicit "No", "false" or 0)
// are excluded and render blank: absence is hidden, not lettered.
type LetterScale struct {
	Values  []coerce.Value
	letters map[string]string
}

// Letter returns the glyph for v and whether v is in the letter
// domain.
func (l *LetterScale) Letter(v coerce.Value) (string, bool) {
	s, ok := l.letters[v.Key()]
	return s, ok
}

// Column is the classification result for one heading.
type Column struct {
	Name   string
	Kind   Kind
	Values []coerce.Value // sorted distinct observed values

	Heat    *HeatScale   // set when Kind == Numeric
	Letters *LetterScale // set when Kind == Categorical
}

// Render produces the visual directive for one observed value of this
// column.
func (c *Column) Render(v any) Cell {
	switch c.Kind {
	case Boolean:
		if n, ok := coerce.Number(v); ok && n == 1 {
			return Cell{Kind: CellIndicator}
		}
		return Cell{}
	case Numeric:
		n, ok := coerce.Number(v)
		if !ok {
			return Cell{}
		}
		return Cell{Kind: CellFill, Fill: c.Heat.Color(n)}
	default:
		cv := coerce.Canonical(v)
		if cv.IsNum && cv.Num == 0 {
			return Cell{}
		}
		if letter, ok := c.Letters.Letter(cv); ok {
			return Cell{Kind: CellLetter, Letter: letter}
		}
		return Cell{}
	}
}

// Classify unions the headings observed across rows, accumulates each
// heading's distinct coerced values, and infers a kind and rendering
// rule per heading. Rows may be sparse: column sets can differ per
// row. Classification is pure; callers that want to reuse a result
// across updates wrap it in their own cache.
func Classify[R any](rows []R, headings func(R) []string, values func(R) []any, pal Palette) (map[string]*Column, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	acc := newColumnSets()
	for i, row := range rows {
		hs, vs := headings(row), values(row)
		if len(hs) != len(vs) {
			return nil, &RowShapeError{Index: i, Headings: len(hs), Values: len(vs)}
		}
		for j, h := range hs {
			acc.add(h, coerce.Canonical(vs[j]))
		}
	}

	out := make(map[string]*Column, len(acc.names))
	for _, name := range acc.names {
		out[name] = classifyColumn(name, acc.distinct(name), pal)
	}
	return out, nil
}

func classifyColumn(name string, vals []coerce.Value, pal Palette) *Column {
	allNumeric, allBits := true, true
	for _, v := range vals {
		if !v.IsNum {
			allNumeric, allBits = false, false
			break
		}
		if v.Num != 0 && v.Num != 1 {
			allBits = false
		}
	}

	if allNumeric {
		sort.Slice(vals, func(i, j int) bool { return vals[i].Num < vals[j].Num })
	} else {
		sort.Slice(vals, func(i, j int) bool { return vals[i].String() < vals[j].String() })
	}

	col := &Column{Name: name, Values: vals}
	switch {
	case allBits:
		col.Kind = Boolean
	case allNumeric:
		col.Kind = Numeric
		xs := make([]float64, len(vals))
		for i, v := range vals {
			xs[i] = v.Num
		}
		sample := stats.Sample{Xs: xs, Sorted: true}
		min, max := sample.Bounds()
		col.Heat = &HeatScale{
			Min:    min,
			Median: sample.Quantile(0.5),
			Max:    max,
			pal:    pal,
		}
	default:
		col.Kind = Categorical
		letters := make(map[string]string)
		scale := &LetterScale{letters: letters}
		i := 0
		for _, v := range vals {
			if v.IsNum && v.Num == 0 {
				continue
			}
			letters[v.Key()] = string(rune('A' + i%26))
			scale.Values = append(scale.Values, v)
			i++
		}
		col.Letters = scale
	}
	return col
}

// columnSets keeps, per heading, the set of distinct observed values
// in insertion order, decoupled from map iteration semantics.
type columnSets struct {
	names []string
	seen  map[string]map[string]bool
	vals  map[string][]coerce.Value
}

func newColumnSets() *columnSets {
	return &columnSets{
		seen: make(map[string]map[string]bool),
		vals: make(map[string][]coerce.Value),
	}
}

func (c *columnSets) add(name string, v coerce.Value) {
	set, ok := c.seen[name]
	if !ok {
		set = make(map[string]bool)
		c.seen[name] = set
		c.names = append(c.names, name)
	}
	if !set[v.Key()] {
		set[v.Key()] = true
		c.vals[name] = append(c.vals[name], v)
	}
}

func (c *columnSets) distinct(name string) []coerce.Value {
	return c.vals[name]
}
