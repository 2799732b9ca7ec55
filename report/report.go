// Package report renders the outcome of a run as a standalone HTML page:
// a scatter plot of the final clusters with their centroids, and a bar
// chart of how many points moved in each iteration.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hupe1980/lloyd"
)

const centroidColor = "#000000"

// Page builds the report page for res.
func Page(title string, res *lloyd.Result) *components.Page {
	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(scatter(title, res), movedBar(res))
	return page
}

// Render writes the report page for res to w.
func Render(w io.Writer, title string, res *lloyd.Result) error {
	return Page(title, res).Render(w)
}

// HTML returns the report page for res.
func HTML(title string, res *lloyd.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, title, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scatter(title string, res *lloyd.Result) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d clusters, %d iterations, converged=%t", len(res.Clusters), res.Iterations, res.Converged),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "5%",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Title: "clusters",
				},
			},
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", XAxisIndex: 0},
			opts.DataZoom{Type: "inside", YAxisIndex: 0},
		),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Formatter: "{a}: {b}",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y"}),
	)

	centroids := make([]opts.ScatterData, 0, len(res.Clusters))
	for i, c := range res.Clusters {
		data := make([]opts.ScatterData, 0, c.Len())
		for _, p := range c.Points {
			data = append(data, opts.ScatterData{
				Name:  strconv.FormatUint(uint64(p.ID), 10),
				Value: []float64{p.X, p.Y},
			})
		}

		name := fmt.Sprintf("Cluster %d", i)
		var series []charts.SeriesOpts
		if c.Centroid != nil {
			centroids = append(centroids, opts.ScatterData{
				Name:       name,
				Value:      []float64{c.Centroid.X, c.Centroid.Y},
				Symbol:     "diamond",
				SymbolSize: 16,
			})
			if c.Centroid.Color != "" {
				series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Centroid.Color}))
			}
		}
		sc.AddSeries(name, data, series...)
	}

	sc.AddSeries("Centroids", centroids, charts.WithItemStyleOpts(opts.ItemStyle{Color: centroidColor}))
	return sc
}

func movedBar(res *lloyd.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Points moved per iteration"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "moved"}),
	)

	labels := make([]string, len(res.Stats))
	data := make([]opts.BarData, len(res.Stats))
	for i, s := range res.Stats {
		labels[i] = strconv.Itoa(s.Iteration)
		data[i] = opts.BarData{Value: s.Moved}
	}

	bar.SetXAxis(labels).AddSeries("moved", data)
	return bar
}
