package render

import (
	"fmt"
	"io"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/fsutil"
	"github.com/banshee-data/survival.report/internal/monitoring"
	"github.com/banshee-data/survival.report/internal/stats"
)

// Output file names, relative to the output directory.
const (
	VisualizationsFile = "titanic_visualizations.png"
	HeatmapFile        = "titanic_correlation_heatmap.png"
	DashboardFile      = "titanic_dashboard.html"
)

// DefaultBins matches the histogram bin count of the static figure.
const DefaultBins = 20

// Renderer writes the chart artifacts for a cleaned table.
type Renderer struct {
	FS   fsutil.FileSystem
	Bins int
}

// NewRenderer returns a Renderer writing through fs with the given histogram
// bin count. bins <= 0 selects DefaultBins.
func NewRenderer(fs fsutil.FileSystem, bins int) *Renderer {
	if bins <= 0 {
		bins = DefaultBins
	}
	return &Renderer{FS: fs, Bins: bins}
}

// Visualizations lays out the four overview plots on a 2x2 grid:
// survival count, survival by class, age and fare distributions.
func (r *Renderer) Visualizations(t *dataset.Table) ([][]*plot.Plot, error) {
	survival, err := CountPlot(t, dataset.ColSurvived, "Survival Count")
	if err != nil {
		return nil, err
	}
	byClass, err := GroupedCountPlot(t, dataset.ColPclass, dataset.ColSurvived, "Survival by Passenger Class")
	if err != nil {
		return nil, err
	}
	age, err := Histogram(t, dataset.ColAge, "Age Distribution", r.Bins)
	if err != nil {
		return nil, err
	}
	fare, err := Histogram(t, dataset.ColFare, "Fare Distribution", r.Bins)
	if err != nil {
		return nil, err
	}
	return [][]*plot.Plot{
		{survival, byClass},
		{age, fare},
	}, nil
}

// WriteVisualizations renders the 2x2 overview figure as a 15x10 inch PNG.
func (r *Renderer) WriteVisualizations(dir string, t *dataset.Table) (string, error) {
	plots, err := r.Visualizations(t)
	if err != nil {
		return "", fmt.Errorf("build overview plots: %w", err)
	}
	path := filepath.Join(dir, VisualizationsFile)
	if err := r.writeFile(path, func(w io.Writer) error { return writeGrid(w, plots, 15*vg.Inch, 10*vg.Inch) }); err != nil {
		return "", err
	}
	monitoring.Logf("render: wrote %s", path)
	return path, nil
}

// WriteHeatmap renders the annotated correlation heatmap as an 8x6 inch PNG.
func (r *Renderer) WriteHeatmap(dir string, corr *stats.NamedMatrix) (string, error) {
	p, err := CorrelationHeatmap(corr, "Correlation Heatmap")
	if err != nil {
		return "", err
	}
	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return "", fmt.Errorf("heatmap canvas: %w", err)
	}
	path := filepath.Join(dir, HeatmapFile)
	if err := r.writeFile(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	}); err != nil {
		return "", err
	}
	monitoring.Logf("render: wrote %s", path)
	return path, nil
}

// WritePNGs writes both static figures and returns their paths.
func (r *Renderer) WritePNGs(dir string, t *dataset.Table, corr *stats.NamedMatrix) ([]string, error) {
	if err := r.FS.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	vis, err := r.WriteVisualizations(dir, t)
	if err != nil {
		return nil, err
	}
	hm, err := r.WriteHeatmap(dir, corr)
	if err != nil {
		return nil, err
	}
	return []string{vis, hm}, nil
}

// WriteDashboard writes the interactive HTML dashboard.
func (r *Renderer) WriteDashboard(dir string, t *dataset.Table, corr *stats.NamedMatrix) (string, error) {
	page, err := Dashboard(t, corr, r.Bins)
	if err != nil {
		return "", err
	}
	if err := r.FS.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, DashboardFile)
	if err := r.writeFile(path, page.Render); err != nil {
		return "", err
	}
	monitoring.Logf("render: wrote %s", path)
	return path, nil
}

func (r *Renderer) writeFile(path string, write func(io.Writer) error) error {
	f, err := r.FS.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// writeGrid draws plots (indexed [row][col]) onto one PNG canvas.
func writeGrid(w io.Writer, plots [][]*plot.Plot, width, height vg.Length) error {
	rows := len(plots)
	cols := len(plots[0])
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if plots[j][i] != nil {
				plots[j][i].Draw(canvases[j][i])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}
