// Package charts renders the dashboard figures as PNG images using
// gonum/plot. Chart functions return the encoded bytes so callers can
// serve them over HTTP or write them to disk.
package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
)

// palette is cycled across series.
var palette = []color.RGBA{
	{R: 70, G: 130, B: 180, A: 255},
	{R: 220, G: 20, B: 60, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
	{R: 148, G: 0, B: 211, A: 255},
	{R: 139, G: 69, B: 19, A: 255},
	{R: 0, G: 139, B: 139, A: 255},
	{R: 255, G: 20, B: 147, A: 255},
	{R: 105, G: 105, B: 105, A: 255},
	{R: 154, G: 205, B: 50, A: 255},
}

func seriesColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// render encodes the plot as a PNG at the given size.
func render(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// GrossLineChart draws gross over years, one line per genre. An empty
// table yields a chart with empty axes rather than an error.
func GrossLineChart(table analysis.PivotTable) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Gross earnings by genre"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Gross"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	// Lines read left to right, oldest year first
	years := append([]int(nil), table.Years...)
	sort.Ints(years)

	for i, genre := range table.Genres {
		points := make(plotter.XYs, len(years))
		for j, y := range years {
			points[j].X = float64(y)
			points[j].Y = table.Cells[y][genre]
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, fmt.Errorf("failed to build line for genre %q: %w", genre, err)
		}
		line.Color = seriesColor(i)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(genre, line)
	}

	return render(p, 10*vg.Inch, 5*vg.Inch)
}

// barOffset positions bar i of count so the whole group is centered on
// its nominal tick.
func barOffset(i, count int, width vg.Length) vg.Length {
	return (vg.Length(i) - vg.Length(count-1)/2) * width
}

// SpeciesBarChart draws a grouped bar chart of the selected metrics per
// species, one bar group per species.
func SpeciesBarChart(species []dataset.Species, metrics []string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Species survival strategies"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Score"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	barWidth := vg.Points(14)

	for i, metric := range metrics {
		values := make(plotter.Values, len(species))
		for j, s := range species {
			v, ok := s.Metric(metric)
			if !ok {
				return nil, fmt.Errorf("unknown species metric %q", metric)
			}
			values[j] = v
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to build bars for metric %q: %w", metric, err)
		}
		bars.Color = seriesColor(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = barOffset(i, len(metrics), barWidth)

		p.Add(bars)
		p.Legend.Add(metric, bars)
	}

	names := make([]string, len(species))
	for i, s := range species {
		names[i] = s.Species
	}
	p.NominalX(names...)

	return render(p, 10*vg.Inch, 5*vg.Inch)
}

// RegressionChart draws the regression observations as a scatter plot
// with the fitted line overlaid.
func RegressionChart(fit analysis.Fit) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", fit.YVariable, fit.XVariable)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = fit.XVariable
	p.Y.Label.Text = fit.YVariable
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(fit.Points))
	for i, pt := range fit.Points {
		points[i].X = pt.X
		points[i].Y = pt.Y
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build regression scatter: %w", err)
	}
	scatter.GlyphStyle.Color = seriesColor(0)
	scatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(scatter)

	line := plotter.NewFunction(func(x float64) float64 {
		return fit.Intercept + fit.Slope*x
	})
	line.Color = seriesColor(1)
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("fit", line)

	return render(p, 8*vg.Inch, 6*vg.Inch)
}
