// Package plot renders session render-states as self-contained echarts HTML.
//
// It is a read-only consumer of engine.RenderState and is deliberately kept
// out of the step engine: the interactive UI drives its own drawing, while
// this package serves exports and notebooks.
package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/AvraamMavridis/randomcolor"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hupe1980/kmeanslab/engine"
)

const centroidColor = "black"

// Options contains configuration options for chart rendering.
type Options struct {
	// Title is the chart title.
	Title string
}

// DefaultOptions contains the default configuration options for rendering.
var DefaultOptions = Options{
	Title: "k-means",
}

// Scatter renders the session's points as one series per cluster with the
// centroids overlaid in black. Before the first step (no assignment) all
// points render as a single unclustered series.
func Scatter(w io.Writer, rs engine.RenderState, optFns ...func(o *Options)) error {
	o := DefaultOptions
	for _, fn := range optFns {
		fn(&o)
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{a}: {b}"}),
	)

	members := rs.ClusterMembers()
	if members == nil {
		data := make([]opts.ScatterData, 0, len(rs.Dataset))
		for i, p := range rs.Dataset {
			data = append(data, opts.ScatterData{
				Name:  strconv.Itoa(i),
				Value: []float64{p.X, p.Y},
			})
		}
		sc.AddSeries("Points", data)
		return sc.Render(w)
	}

	colors := newColorPicker()
	for cluster, bm := range members {
		data := make([]opts.ScatterData, 0, bm.GetCardinality())

		it := bm.Iterator()
		for it.HasNext() {
			i := int(it.Next())
			data = append(data, opts.ScatterData{
				Name:  strconv.Itoa(i),
				Value: []float64{rs.Dataset[i].X, rs.Dataset[i].Y},
			})
		}

		sc.AddSeries(fmt.Sprintf("Cluster %d", cluster), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors.next()}))
	}

	centroids := make([]opts.ScatterData, 0, len(rs.Centroids))
	for _, c := range rs.Centroids {
		centroids = append(centroids, opts.ScatterData{Value: []float64{c.X, c.Y}})
	}
	sc.AddSeries("Centroids", centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: centroidColor}))

	return sc.Render(w)
}

// ClusterSizes renders a bar chart of points per cluster.
// Before the first step there is nothing to chart and an error is returned.
func ClusterSizes(w io.Writer, rs engine.RenderState, optFns ...func(o *Options)) error {
	o := DefaultOptions
	for _, fn := range optFns {
		fn(&o)
	}

	sizes := rs.ClusterSizes()
	if sizes == nil {
		return fmt.Errorf("plot: no assignment to chart yet")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
	)

	var (
		xAxis []string
		items []opts.BarData
	)
	for cluster, size := range sizes {
		xAxis = append(xAxis, strconv.Itoa(cluster))
		items = append(items, opts.BarData{
			Name:  strconv.Itoa(cluster),
			Value: size,
		})
	}

	bar.SetXAxis(xAxis).AddSeries("", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	return bar.Render(w)
}

// colorPicker hands out distinct random colors, avoiding repeats and the
// reserved centroid color.
type colorPicker struct {
	used map[string]bool
}

func newColorPicker() *colorPicker {
	return &colorPicker{used: map[string]bool{centroidColor: true}}
}

func (c *colorPicker) next() string {
	for {
		color := randomcolor.GetRandomColorInHex()
		if !c.used[color] {
			c.used[color] = true
			return color
		}
	}
}
