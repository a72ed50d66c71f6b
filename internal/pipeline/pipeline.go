// Package pipeline runs the EDA stages in order: load, clean, render and
// summarize.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/banshee-data/survival.report/internal/cleaning"
	"github.com/banshee-data/survival.report/internal/config"
	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/fsutil"
	"github.com/banshee-data/survival.report/internal/httputil"
	"github.com/banshee-data/survival.report/internal/monitoring"
	"github.com/banshee-data/survival.report/internal/render"
	"github.com/banshee-data/survival.report/internal/report"
	"github.com/banshee-data/survival.report/internal/stats"
	"github.com/banshee-data/survival.report/internal/timeutil"
)

// Deps are the side-effecting collaborators of a run. Zero fields are
// replaced with production implementations by Run.
type Deps struct {
	Client httputil.HTTPClient
	FS     fsutil.FileSystem
	Clock  timeutil.Clock
	Stdout io.Writer
	RunID  func() string
}

func (d *Deps) withDefaults() {
	if d.Client == nil {
		d.Client = httputil.NewStandardClient(nil)
	}
	if d.FS == nil {
		d.FS = fsutil.OSFileSystem{}
	}
	if d.Clock == nil {
		d.Clock = timeutil.RealClock{}
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.RunID == nil {
		d.RunID = uuid.NewString
	}
}

// Result describes a completed run.
type Result struct {
	RunID   string
	Summary *report.Summary
	Outputs []string
}

// Run executes one full EDA pass with cfg. Any stage failure aborts the run.
func Run(ctx context.Context, cfg *config.EDAConfig, deps Deps) (*Result, error) {
	if cfg == nil {
		cfg = config.EmptyEDAConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deps.withDefaults()

	runID := deps.RunID()
	start := deps.Clock.Now()
	monitoring.Logf("run %s: source=%s out=%s", runID, cfg.GetSourceURL(), cfg.GetOutputDir())

	t, err := load(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}
	report.PrintOverview(deps.Stdout, t)
	report.PrintHead(deps.Stdout, t, cfg.GetHeadRows())
	report.PrintMissing(deps.Stdout, t.MissingCounts())

	done := monitoring.Stage(deps.Clock, "clean")
	clean, err := cleaning.Clean(t, cleaning.Options{
		MissingThreshold: cfg.GetMissingThreshold(),
		IQRMultiplier:    cfg.GetIQRMultiplier(),
	})
	done()
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	rows, cols := t.Shape()
	fmt.Fprintf(deps.Stdout, "\nShape after removing duplicates: (%d, %d)\n", rows, cols)
	fmt.Fprintf(deps.Stdout, "\nNumber of outliers in Fare: %d\n", clean.Fare.Outliers)

	corr, err := correlations(t)
	if err != nil {
		return nil, err
	}

	dir := cfg.GetOutputDir()
	done = monitoring.Stage(deps.Clock, "render")
	r := render.NewRenderer(deps.FS, cfg.GetHistogramBins())
	outputs, err := r.WritePNGs(dir, t, corr)
	if err == nil && cfg.GetDashboard() {
		var dash string
		if dash, err = r.WriteDashboard(dir, t, corr); err == nil {
			outputs = append(outputs, dash)
		}
	}
	done()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	done = monitoring.Stage(deps.Clock, "summarize")
	summary, err := report.Compute(t, clean, corr)
	if err == nil {
		summary.Stamp(runID, deps.Clock.Now())
		path := filepath.Join(dir, report.InsightsFile)
		if err = report.Write(deps.FS, path, summary); err == nil {
			outputs = append(outputs, path)
		}
	}
	done()
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	monitoring.Logf("run %s: EDA completed in %s; outputs: %s",
		runID, deps.Clock.Since(start), strings.Join(outputs, ", "))
	return &Result{RunID: runID, Summary: summary, Outputs: outputs}, nil
}

// load fetches http(s) sources and reads anything else from the filesystem.
func load(ctx context.Context, cfg *config.EDAConfig, deps Deps) (*dataset.Table, error) {
	defer monitoring.Stage(deps.Clock, "load")()

	src := cfg.GetSourceURL()
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return dataset.LoadFile(deps.FS, src)
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.GetFetchTimeout())
	defer cancel()
	return dataset.Fetch(ctx, deps.Client, src)
}

func correlations(t *dataset.Table) (*stats.NamedMatrix, error) {
	cols, err := t.CompleteCases(dataset.CorrelationColumns...)
	if err != nil {
		return nil, fmt.Errorf("correlation inputs: %w", err)
	}
	corr, err := stats.NewNamedCorrelation(dataset.CorrelationColumns, cols)
	if err != nil {
		return nil, fmt.Errorf("correlation matrix: %w", err)
	}
	return corr, nil
}
