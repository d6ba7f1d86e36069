package chart

import (
	"fmt"
	"io"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/meermanr/whathifi/app/review"
	"github.com/meermanr/whathifi/app/vizcolumns"
)

const (
	rowHeight   = 24
	cellWidth   = 28
	nameWidth   = 200
	priceWidth  = 64
	ratingWidth = 48
	headerH     = 110
	indicatorR  = 5

	cellTextStyle   = "font-family:sans-serif;font-size:11px;fill:#333"
	headerTextStyle = "font-family:sans-serif;font-size:11px;fill:#333"
	cellBorderStyle = "fill:none;stroke:#ddd;stroke-width:1"
	indicatorStyle  = "fill:#333;stroke:none"
)

// RenderSpecTable draws the table view: one row per review, the fixed
// name/price/rating columns, then one column per classified spec
// heading painted from its rendering rule, plus a letter legend for
// the categorical columns.
func RenderSpecTable(w io.Writer, reviews []review.Review, columns map[string]*vizcolumns.Column) error {
	if len(reviews) == 0 {
		return fmt.Errorf("no reviews to tabulate")
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	specX := nameWidth + priceWidth + ratingWidth
	totalW := specX + cellWidth*len(names) + 20
	legendRows := 0
	for _, name := range names {
		if columns[name].Kind == vizcolumns.Categorical {
			legendRows += len(columns[name].Letters.Values) + 1
		}
	}
	totalH := headerH + rowHeight*len(reviews) + 30 + rowHeight*legendRows

	canvas := svg.New(w)
	canvas.Start(totalW, totalH)

	// Rotated column headers.
	canvas.Gstyle(headerTextStyle)
	canvas.Text(8, headerH-8, "Product")
	canvas.Text(nameWidth+8, headerH-8, "Price")
	canvas.Text(nameWidth+priceWidth+8, headerH-8, "Rating")
	for i, name := range names {
		x := specX + i*cellWidth + cellWidth/2
		canvas.Text(x, headerH-8, name,
			fmt.Sprintf("transform=\"rotate(-60 %d %d)\"", x, headerH-8))
	}
	canvas.Gend()

	for ri, r := range reviews {
		top := headerH + ri*rowHeight
		mid := top + rowHeight/2

		canvas.Gstyle(cellTextStyle)
		canvas.Text(8, mid+4, r.Name)
		canvas.Text(nameWidth+8, mid+4, fmt.Sprintf("%d", r.Price))
		canvas.Text(nameWidth+priceWidth+8, mid+4, fmt.Sprintf("%d", r.Rating))
		canvas.Gend()

		for ci, name := range names {
			col := columns[name]
			x := specX + ci*cellWidth
			value, present := r.Spec[name]
			canvas.Rect(x, top, cellWidth, rowHeight, cellBorderStyle)
			if !present {
				continue
			}
			drawCell(canvas, col.Render(value), x, top)
		}
	}

	// Letter legend for categorical columns.
	y := headerH + rowHeight*len(reviews) + 30
	canvas.Gstyle(cellTextStyle)
	for _, name := range names {
		col := columns[name]
		if col.Kind != vizcolumns.Categorical {
			continue
		}
		canvas.Text(8, y, name+":")
		y += rowHeight
		for _, v := range col.Letters.Values {
			letter, _ := col.Letters.Letter(v)
			canvas.Text(24, y, fmt.Sprintf("%s = %s", letter, v.String()))
			y += rowHeight
		}
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func drawCell(canvas *svg.SVG, cell vizcolumns.Cell, x, top int) {
	cx, cy := x+cellWidth/2, top+rowHeight/2
	switch cell.Kind {
	case vizcolumns.CellIndicator:
		canvas.Circle(cx, cy, indicatorR, indicatorStyle)
	case vizcolumns.CellFill:
		canvas.Rect(x+1, top+1, cellWidth-2, rowHeight-2, fillStyle(cell.Fill))
	case vizcolumns.CellLetter:
		canvas.Text(cx, cy+4, cell.Letter, cellTextStyle+";text-anchor:middle")
	}
}
