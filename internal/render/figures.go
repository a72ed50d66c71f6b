// Package render draws the EDA charts: static PNGs with gonum/plot and an
// interactive HTML dashboard with go-echarts.
package render

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/stats"
)

// kdePoints is the resolution of the density line over a histogram.
const kdePoints = 200

// Default seaborn-style palette.
var seriesColors = []color.Color{
	color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff},
	color.RGBA{R: 0xdd, G: 0x84, B: 0x52, A: 0xff},
	color.RGBA{R: 0x55, G: 0xa8, B: 0x68, A: 0xff},
	color.RGBA{R: 0xc4, G: 0x4e, B: 0x52, A: 0xff},
}

func seriesColor(i int) color.Color { return seriesColors[i%len(seriesColors)] }

// categoryLabel formats a numeric category key the way the CSV wrote it.
func categoryLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// CountPlot draws one bar per distinct value of a numeric column.
func CountPlot(t *dataset.Table, col, title string) (*plot.Plot, error) {
	values, err := t.NumericValues(col)
	if err != nil {
		return nil, err
	}
	keys, counts := stats.Counts(values)

	p := newPlot(title, col, "count")
	bars, err := plotter.NewBarChart(intValues(counts), vg.Points(60))
	if err != nil {
		return nil, fmt.Errorf("%s bars: %w", col, err)
	}
	bars.Color = seriesColor(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels(keys)...)
	p.Y.Min = 0
	return p, nil
}

// GroupedCountPlot draws counts of x split by the distinct values of hue,
// one side-by-side bar per hue value.
func GroupedCountPlot(t *dataset.Table, x, hue, title string) (*plot.Plot, error) {
	xs, err := t.NumericColumn(x)
	if err != nil {
		return nil, err
	}
	hs, err := t.NumericColumn(hue)
	if err != nil {
		return nil, err
	}

	xKeys, _ := stats.Counts(validOf(xs))
	hKeys, _ := stats.Counts(validOf(hs))
	xIdx := indexOf(xKeys)
	hIdx := indexOf(hKeys)

	counts := make([][]int, len(hKeys))
	for h := range counts {
		counts[h] = make([]int, len(xKeys))
	}
	for i := range xs.Nums {
		if !xs.Valid[i] || !hs.Valid[i] {
			continue
		}
		counts[hIdx[hs.Nums[i]]][xIdx[xs.Nums[i]]]++
	}

	p := newPlot(title, x, "count")
	w := vg.Points(28)
	for h, hk := range hKeys {
		bars, err := plotter.NewBarChart(intValues(counts[h]), w)
		if err != nil {
			return nil, fmt.Errorf("%s/%s bars: %w", x, hue, err)
		}
		bars.Color = seriesColor(h)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(h)-float64(len(hKeys)-1)/2) * w
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%s=%s", hue, categoryLabel(hk)), bars)
	}
	p.Legend.Top = true
	p.NominalX(labels(xKeys)...)
	p.Y.Min = 0
	return p, nil
}

// Histogram draws a binned count of a numeric column with a Gaussian KDE
// line scaled to the same count axis.
func Histogram(t *dataset.Table, col, title string, bins int) (*plot.Plot, error) {
	values, err := t.NumericValues(col)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram of %s: %w", col, stats.ErrNoData)
	}

	p := newPlot(title, col, "count")
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("%s histogram: %w", col, err)
	}
	h.FillColor = withAlpha(seriesColor(0), 0x99)
	h.LineStyle.Color = color.White
	p.Add(h)

	lo, hi, _ := stats.Range(values)
	binWidth := (hi - lo) / float64(bins)
	if xs, ys := stats.KDE(values, lo, hi, kdePoints); xs != nil && binWidth > 0 {
		scale := float64(len(values)) * binWidth
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i] = plotter.XY{X: xs[i], Y: ys[i] * scale}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s kde: %w", col, err)
		}
		line.Color = seriesColor(0)
		line.Width = vg.Points(1.5)
		p.Add(line)
	}
	p.Y.Min = 0
	return p, nil
}

// correlationGrid adapts a NamedMatrix to plotter.GridXYZ. Row 0 of the
// matrix is drawn at the top, as a table would read.
type correlationGrid struct {
	m *stats.NamedMatrix
}

func (g correlationGrid) Dims() (c, r int) {
	n := len(g.m.Names)
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	n := len(g.m.Names)
	return g.m.M.At(n-1-r, c)
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// coolwarm returns a diverging blue-red palette centred on zero over [-1, 1].
func coolwarm(n int) palette.Palette {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	return cm.Palette(n)
}

// CorrelationHeatmap draws an annotated heatmap of a correlation matrix.
func CorrelationHeatmap(m *stats.NamedMatrix, title string) (*plot.Plot, error) {
	n := len(m.Names)
	if n == 0 {
		return nil, fmt.Errorf("heatmap: %w", stats.ErrNoData)
	}

	grid := correlationGrid{m: m}
	hm := plotter.NewHeatMap(grid, coolwarm(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 0xdd}

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)

	xys := make(plotter.XYs, 0, n*n)
	text := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			text = append(text, fmt.Sprintf("%.2f", grid.Z(c, r)))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(annotations)

	reversed := make([]string, n)
	for i, name := range m.Names {
		reversed[n-1-i] = name
	}
	p.NominalX(m.Names...)
	p.NominalY(reversed...)
	return p, nil
}

func intValues(counts []int) plotter.Values {
	out := make(plotter.Values, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

func labels(keys []float64) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = categoryLabel(k)
	}
	return out
}

func validOf(c *dataset.Column) []float64 {
	out := make([]float64, 0, len(c.Nums))
	for i, v := range c.Nums {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(keys []float64) map[float64]int {
	sort.Float64s(keys)
	idx := make(map[float64]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return idx
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
