package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// writeGrid lays the sub-plots out as a tile grid on one canvas and writes
// the composite as a PNG, one image per dashboard.
func writeGrid(path string, plots [][]*plot.Plot, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, row := range plots {
		for j, p := range row {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("charts: write %s: %w", path, err)
	}
	return nil
}

// linePlot draws kvs as a line over an ordinal axis; every other point is
// labeled to keep the axis readable.
func linePlot(title, ylabel string, kvs []KV) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	xys := make(plotter.XYs, len(kvs))
	ticks := make([]plot.Tick, 0, len(kvs))
	for i, kv := range kvs {
		xys[i] = plotter.XY{X: float64(i), Y: kv.Value}
		tick := plot.Tick{Value: float64(i)}
		if i%2 == 0 {
			tick.Label = kv.Key
		}
		ticks = append(ticks, tick)
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	line.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())
	return p, nil
}

// barPlot draws kvs as a bar chart, horizontal when asked.
func barPlot(title, valueLabel string, kvs []KV, horizontal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	values := make(plotter.Values, len(kvs))
	names := make([]string, len(kvs))
	for i, kv := range kvs {
		values[i] = kv.Value
		names[i] = kv.Key
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(1)
	bars.Horizontal = horizontal
	p.Add(bars)
	if horizontal {
		p.NominalY(names...)
		p.X.Label.Text = valueLabel
	} else {
		p.NominalX(names...)
		p.Y.Label.Text = valueLabel
	}
	return p, nil
}

// histPlot draws a histogram of values and, when markMean is set, a dashed
// mean line with a legend entry.
func histPlot(title, xlabel string, values []float64, bins int, markMean bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	hist.FillColor = plotutil.Color(2)
	p.Add(hist)

	if markMean && len(values) > 0 {
		mean := Mean(values)
		top := float64(maxBinCount(values, bins))
		meanLine, err := plotter.NewLine(plotter.XYs{
			{X: mean, Y: 0},
			{X: mean, Y: top},
		})
		if err != nil {
			return nil, err
		}
		meanLine.Color = color.RGBA{R: 0xcc, A: 0xff}
		meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(meanLine)
		p.Legend.Add(fmt.Sprintf("Mean: %.2f", mean), meanLine)
		p.Legend.Top = true
	}
	return p, nil
}

// maxBinCount is the tallest equal-width bin over values, used to size the
// mean marker line.
func maxBinCount(values []float64, bins int) int {
	if len(values) == 0 || bins <= 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return len(values)
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	top := 0
	for _, n := range counts {
		if n > top {
			top = n
		}
	}
	return top
}

// groupedBarPlot draws one bar group per name with one offset bar per
// series.
func groupedBarPlot(title, valueLabel string, groups []string, series []string, value func(group, series string) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = valueLabel

	barWidth := vg.Points(10)
	offset := -barWidth * vg.Length(len(series)-1) / 2
	for i, s := range series {
		values := make(plotter.Values, len(groups))
		for j, g := range groups {
			values[j] = value(g, s)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + barWidth*vg.Length(i)
		p.Add(bars)
		p.Legend.Add(s, bars)
	}
	p.Legend.Top = true
	p.NominalX(groups...)
	return p, nil
}

// scatterPlot draws one colored point cloud per series with a legend.
func scatterPlot(title, xlabel, ylabel string, series []string, points map[string]plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	for i, name := range series {
		sc, err := plotter.NewScatter(points[name])
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(name, sc)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// metricsPanel renders label/value pairs as a text panel with hidden axes.
func metricsPanel(title string, lines []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	xys := make(plotter.XYs, len(lines))
	for i := range lines {
		xys[i] = plotter.XY{X: 0.5, Y: float64(len(lines) - i)}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, float64(len(lines)+1)
	return p, nil
}
