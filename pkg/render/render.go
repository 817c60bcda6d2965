// Package render draws grouped series as a PNG line chart. It is the chart
// collaborator on the far side of the pipeline: it consumes labeled series
// and knows nothing about filters or parsing.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/scendash/scendash/pkg/series"
)

// ErrNoSeries is returned when there is nothing to plot.
var ErrNoSeries = errors.New("render: no series to render")

// Options sizes and titles the chart.
type Options struct {
	Title  string
	Width  int
	Height int
}

// PNG renders one line per series, X = year, Y = value, legend from series
// labels.
func PNG(w io.Writer, groups []series.Series, opts Options) error {
	if len(groups) == 0 {
		return ErrNoSeries
	}

	chartSeries := make([]chart.Series, 0, len(groups))
	for _, g := range groups {
		xs := make([]float64, len(g.Data))
		ys := make([]float64, len(g.Data))
		for i, r := range g.Data {
			xs[i] = float64(r.Year)
			ys[i] = r.Value
		}
		// go-chart cannot draw a single-point line; widen it into a flat
		// two-point segment so the series still shows up.
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		name := g.Label
		if name == "" {
			name = "Series"
		}
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 36}},
		XAxis: chart.XAxis{
			Name: "Year",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return fmt.Sprint(v)
			},
		},
		YAxis:  chart.YAxis{Name: "Value"},
		Series: chartSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}
