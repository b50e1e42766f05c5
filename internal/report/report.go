// Package report renders HTML chart pages for stored recordings.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/touch"
)

// Render writes an HTML report for a recording: the stroke path as a
// scatter plot and the speed profile as a line chart.
func Render(w io.Writer, rec *store.Recording, samples []touch.Sample) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Mudra Recording: %s", rec.Name)
	page.AddCharts(pathChart(rec, samples), speedChart(samples))
	return page.Render(w)
}

// pathChart plots the sample positions in screen coordinates. The Y
// axis is flipped so the plot matches screen orientation (y grows
// downward).
func pathChart(rec *store.Recording, samples []touch.Sample) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(samples))
	for _, s := range samples {
		data = append(data, opts.ScatterData{Value: []interface{}{s.Position.X, -s.Position.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Stroke Path",
			Subtitle: fmt.Sprintf("recording=%s samples=%d", rec.Name, len(samples)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (px, flipped)"}),
	)
	scatter.AddSeries("path", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}

// speedChart plots the instantaneous speed between consecutive samples.
func speedChart(samples []touch.Sample) *charts.Line {
	timestamps := make([]string, 0, len(samples))
	data := make([]opts.LineData, 0, len(samples))
	for i := 1; i < len(samples); i++ {
		dt := samples[i].Timestamp - samples[i-1].Timestamp
		speed := 0.0
		if dt > 0 {
			speed = samples[i].Position.Distance(samples[i-1].Position) / dt
		}
		timestamps = append(timestamps, fmt.Sprintf("%.3f", samples[i].Timestamp))
		data = append(data, opts.LineData{Value: speed})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Speed Profile"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "speed (px/s)"}),
	)
	line.SetXAxis(timestamps)
	line.AddSeries("speed", data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}
