// Package chart renders the portfolio valuation history as a PNG line
// chart and uploads it to the image CDN the HTML report links to.
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spelloconsulting/portfolioperf/date"
)

const (
	chartWidth  = 1200
	chartHeight = 628
)

var lineColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}

// Render draws the valuation history as a PNG time series.
// It needs at least two points to draw a line.
func Render(history *date.History[float64], title string) ([]byte, error) {
	if history.Len() < 2 {
		return nil, errors.Errorf("valuation history has %d points, need at least 2 to chart", history.Len())
	}

	xs := make([]time.Time, 0, history.Len())
	ys := make([]float64, 0, history.Len())
	for on, value := range history.Values() {
		xs = append(xs, on.Time())
		ys = append(ys, value)
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			ValueFormatter: thousandsFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Valuation",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2.0,
					FillColor:   lineColor.WithAlpha(48),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering valuation history chart")
	}
	return buf.Bytes(), nil
}

// thousandsFormatter labels the value axis as "$Nk".
func thousandsFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return fmt.Sprintf("$%.0fk", f/1000)
}
