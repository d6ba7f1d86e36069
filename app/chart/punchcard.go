// Package chart consumes the derived scales and column
// classifications and draws the two views as static SVG: the
// punch-card bubble chart and the spec-sheet table.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/meermanr/whathifi/app/config"
	"github.com/meermanr/whathifi/app/review"
	"github.com/meermanr/whathifi/app/vizscale"
)

const (
	bubbleStyle   = "fill:steelblue;fill-opacity:0.7;stroke:none"
	axisStyle     = "stroke:#999;stroke-width:1"
	gridStyle     = "stroke:#eee;stroke-width:1"
	labelStyle    = "font-family:sans-serif;font-size:11px;fill:#333"
	tickLabelPad  = 16
	yTickLabelPad = 8
)

// RenderPunchCard draws the rating-by-price punch card: one bubble per
// occupied grid point, sized by product count, with tick marks at
// exactly the occupied positions.
func RenderPunchCard(w io.Writer, points []review.FrequencyPoint, conf *config.VizConfig) error {
	scales, err := vizscale.New[review.FrequencyPoint]().
		X(func(p review.FrequencyPoint, _ int) any { return p.Price }).
		Y(func(p review.FrequencyPoint, _ int) any { return p.Rating }).
		Magnitude(func(p review.FrequencyPoint, _ int) any { return p.Count }).
		Extent(float64(conf.Chart.Width), float64(conf.Chart.Height)).
		Build(points)
	if err != nil {
		return fmt.Errorf("failed to build chart scales: %w", err)
	}

	gutter := conf.Chart.AxisGutter
	plotW, plotH := conf.Chart.Width, conf.Chart.Height
	canvas := svg.New(w)
	canvas.Start(gutter+plotW, plotH+gutter)

	// SVG y grows downward; flip so higher ratings sit higher.
	toPx := func(p review.FrequencyPoint) (int, int) {
		x := gutter + round(scales.X.Map(p.Price))
		y := plotH - round(scales.Y.Map(p.Rating))
		return x, y
	}

	// Grid lines through the occupied positions.
	for _, v := range scales.XDomain {
		x := gutter + round(scales.X.MapValue(v))
		canvas.Line(x, 0, x, plotH, gridStyle)
	}
	for _, v := range scales.YDomain {
		y := plotH - round(scales.Y.MapValue(v))
		canvas.Line(gutter, y, gutter+plotW, y, gridStyle)
	}

	canvas.Line(gutter, 0, gutter, plotH, axisStyle)
	canvas.Line(gutter, plotH, gutter+plotW, plotH, axisStyle)

	canvas.Gstyle(labelStyle)
	for _, v := range scales.XDomain {
		x := gutter + round(scales.X.MapValue(v))
		canvas.Text(x, plotH+tickLabelPad, v.String(), "text-anchor:middle")
	}
	for _, v := range scales.YDomain {
		y := plotH - round(scales.Y.MapValue(v))
		canvas.Text(gutter-yTickLabelPad, y+4, v.String(), "text-anchor:end")
	}
	canvas.Text(gutter+plotW/2, plotH+2*tickLabelPad, "Price (tested at)", "text-anchor:middle")
	canvas.Gend()

	for _, p := range points {
		x, y := toPx(p)
		r := round(scales.D.Map(float64(p.Count)))
		if r < 1 {
			r = 1 // a count of one still deserves a visible dot
		}
		canvas.Circle(x, y, r, bubbleStyle)
	}

	canvas.End()
	return nil
}

func round(f float64) int {
	return int(math.Round(f))
}

func fillStyle(c color.RGBA) string {
	return fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B)
}
