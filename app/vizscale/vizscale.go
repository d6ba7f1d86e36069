// Package vizscale derives the pixel-space scales for the punch-card
// bubble charts: a position scale per axis over whatever distinct
// values the data actually contains (numeric or categorical), and a
// radius scale sized so that bubbles on adjacent grid points can never
// overlap.
package vizscale

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/meermanr/whathifi/app/coerce"
)

// ErrEmptyInput is returned when there are no records to derive a
// domain from. The chart has nothing to plot.
var ErrEmptyInput = errors.New("vizscale: no records to plot")

// ErrIncomplete is returned by Build when the builder is missing an
// accessor or has a non-positive extent.
var ErrIncomplete = errors.New("vizscale: builder is missing accessors or extents")

// AccessorError reports an accessor that produced an unusable value
// for some record.
type AccessorError struct {
	Axis  string
	Index int
	Value any
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("vizscale: %s accessor produced unusable value %v for record %d", e.Axis, e.Value, e.Index)
}

// Accessor extracts a plottable value from a record. The result may be
// a number or a categorical string token.
type Accessor[R any] func(record R, i int) any

// AxisKind tells whether an axis maps a continuous numeric domain or
// discrete categorical tokens.
type AxisKind int

const (
	Numeric AxisKind = iota
	Categorical
)

func (k AxisKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Axis is a monotonic mapping from domain values to pixel positions in
// [halfMargin, extent-halfMargin]. The margin leaves room for a
// maximal bubble centered on an extreme value.
type Axis struct {
	Kind   AxisKind
	Domain []coerce.Value

	extent     float64
	halfMargin float64
	spacing    float64

	// numeric axes
	min, max float64

	// categorical axes
	positions map[string]float64
}

// Map returns the pixel position for v. Values outside the trained
// domain of a categorical axis map to NaN; numeric axes extrapolate
// linearly.
func (a *Axis) Map(v any) float64 {
	cv := coerce.Canonical(v)
	if a.Kind == Categorical {
		pos, ok := a.positions[cv.Key()]
		if !ok {
			return math.NaN()
		}
		return pos
	}
	if !cv.IsNum {
		return math.NaN()
	}
	if a.max == a.min {
		return a.extent / 2
	}
	return a.halfMargin + (cv.Num-a.min)/(a.max-a.min)*(a.extent-2*a.halfMargin)
}

// MapValue maps one of the axis's own domain values, as returned in
// GridScales.XDomain and YDomain.
func (a *Axis) MapValue(v coerce.Value) float64 {
	if v.IsNum {
		return a.Map(v.Num)
	}
	return a.Map(v.Token)
}

// RangeSpacing is the guaranteed minimum pixel distance between
// adjacent plotted points on this axis.
func (a *Axis) RangeSpacing() float64 { return a.spacing }

// Degenerate reports a domain that collapsed to a single point. Such
// an axis still maps (everything lands on the center line) but has no
// usable width for tick intervals.
func (a *Axis) Degenerate() bool { return len(a.Domain) < 2 }

// RadiusScale maps a non-negative magnitude to a bubble radius. The
// mapping is square-root scaled so that bubble area, not radius, is
// linear in the magnitude.
type RadiusScale struct {
	maxValue  float64
	maxRadius float64
}

// Map returns the radius for value v, clamped to [0, MaxRadius].
func (s *RadiusScale) Map(v float64) float64 {
	if s.maxValue <= 0 || v <= 0 {
		return 0
	}
	if v >= s.maxValue {
		return s.maxRadius
	}
	return math.Sqrt(v/s.maxValue) * s.maxRadius
}

// MaxRadius is the largest radius the scale will produce: half the
// tightest grid spacing, so two maximal bubbles on the two closest
// grid points touch but never overlap.
func (s *RadiusScale) MaxRadius() float64 { return s.maxRadius }

// GridScales is the output of a Build: position scales for both axes,
// the radius scale, and the exact sorted domain values so the caller
// can place tick marks at the occupied grid positions rather than at
// arbitrary round numbers.
type GridScales struct {
	X, Y    *Axis
	D       *RadiusScale
	XDomain []coerce.Value
	YDomain []coerce.Value
}

// Builder assembles the inputs for a grid-scale derivation. All fields
// are set through fluent setters; Build fails with ErrIncomplete when
// any of them is missing.
type Builder[R any] struct {
	x, y, d       Accessor[R]
	width, height float64
}

// New returns an empty Builder for records of type R.
func New[R any]() *Builder[R] { return &Builder[R]{} }

// X sets the accessor for the horizontal axis.
func (b *Builder[R]) X(fn Accessor[R]) *Builder[R] { b.x = fn; return b }

// Y sets the accessor for the vertical axis.
func (b *Builder[R]) Y(fn Accessor[R]) *Builder[R] { b.y = fn; return b }

// Magnitude sets the accessor for the size-encoded value. It must
// yield a non-negative finite number for every record.
func (b *Builder[R]) Magnitude(fn Accessor[R]) *Builder[R] { b.d = fn; return b }

// Extent sets the pixel dimensions of the plotting area.
func (b *Builder[R]) Extent(width, height float64) *Builder[R] {
	b.width, b.height = width, height
	return b
}

// Build derives the scales for records. It is pure: repeated calls
// with identical inputs produce scales with identical mappings.
func (b *Builder[R]) Build(records []R) (*GridScales, error) {
	if b.x == nil || b.y == nil || b.d == nil || b.width <= 0 || b.height <= 0 {
		return nil, ErrIncomplete
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	xAxis, err := buildAxis("x", records, b.x, b.width)
	if err != nil {
		return nil, err
	}
	yAxis, err := buildAxis("y", records, b.y, b.height)
	if err != nil {
		return nil, err
	}

	maxRadius := math.Min(xAxis.spacing, yAxis.spacing) / 2

	var maxMag float64
	for i, r := range records {
		raw := b.d(r, i)
		n, ok := coerce.Number(raw)
		if !ok || n < 0 {
			return nil, &AccessorError{Axis: "d", Index: i, Value: raw}
		}
		if n > maxMag {
			maxMag = n
		}
	}

	return &GridScales{
		X:       xAxis,
		Y:       yAxis,
		D:       &RadiusScale{maxValue: maxMag, maxRadius: maxRadius},
		XDomain: xAxis.Domain,
		YDomain: yAxis.Domain,
	}, nil
}

func buildAxis[R any](name string, records []R, acc Accessor[R], extent float64) (*Axis, error) {
	seen := make(map[string]bool)
	domain := make([]coerce.Value, 0, len(records))
	allNumeric := true
	for i, r := range records {
		raw := acc(r, i)
		cv := coerce.Canonical(raw)
		if !cv.Valid() {
			return nil, &AccessorError{Axis: name, Index: i, Value: raw}
		}
		if !cv.IsNum {
			allNumeric = false
		}
		if !seen[cv.Key()] {
			seen[cv.Key()] = true
			domain = append(domain, cv)
		}
	}

	if allNumeric {
		sort.Slice(domain, func(i, j int) bool { return domain[i].Num < domain[j].Num })
	} else {
		sort.Slice(domain, func(i, j int) bool { return domain[i].String() < domain[j].String() })
	}

	count := len(domain)
	halfMargin := extent / float64(count*2)
	a := &Axis{
		Domain:     domain,
		extent:     extent,
		halfMargin: halfMargin,
	}

	if allNumeric {
		a.Kind = Numeric
		a.min, a.max = domain[0].Num, domain[count-1].Num
		a.spacing = numericSpacing(domain, a, extent)
		return a, nil
	}

	a.Kind = Categorical
	a.positions = make(map[string]float64, count)
	if count == 1 {
		a.positions[domain[0].Key()] = extent / 2
		a.spacing = extent / 2
		return a, nil
	}
	step := (extent - 2*halfMargin) / float64(count-1)
	for i, v := range domain {
		a.positions[v.Key()] = halfMargin + float64(i)*step
	}
	a.spacing = step
	return a, nil
}

// numericSpacing maps the smallest gap between adjacent domain values
// through the scale and halves it. Degenerate domains fall back to
// half the extent.
func numericSpacing(domain []coerce.Value, a *Axis, extent float64) float64 {
	if len(domain) < 2 {
		return extent / 2
	}
	minGap := math.Inf(1)
	for i := 1; i < len(domain); i++ {
		if gap := domain[i].Num - domain[i-1].Num; gap < minGap {
			minGap = gap
		}
	}
	spacing := minGap / (a.max - a.min) * (extent - 2*a.halfMargin) / 2
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return extent / 2
	}
	return spacing
}
