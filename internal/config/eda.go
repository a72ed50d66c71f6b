package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/survival.report/internal/cleaning"
	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/httputil"
	"github.com/banshee-data/survival.report/internal/render"
)

// DefaultConfigPath is the path to the canonical EDA defaults file.
const DefaultConfigPath = "config/eda.defaults.json"

// EDAConfig holds the optional knobs for a report run. Every field is a
// pointer so a partial JSON file only overrides what it names; the Get*
// methods supply the defaults. Column names come from the dataset schema.
type EDAConfig struct {
	// Input
	SourceURL    *string `json:"source_url,omitempty"`
	FetchTimeout *string `json:"fetch_timeout,omitempty"` // duration string like "60s"

	// Cleaning
	MissingThreshold *float64 `json:"missing_threshold,omitempty"`
	IQRMultiplier    *float64 `json:"iqr_multiplier,omitempty"`

	// Output
	OutputDir     *string `json:"output_dir,omitempty"`
	HistogramBins *int    `json:"histogram_bins,omitempty"`
	HeadRows      *int    `json:"head_rows,omitempty"`
	Dashboard     *bool   `json:"dashboard,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyEDAConfig returns an EDAConfig with all fields set to nil.
func EmptyEDAConfig() *EDAConfig {
	return &EDAConfig{}
}

// DefaultEDAConfig returns a config with every field populated from the
// Get* defaults.
func DefaultEDAConfig() *EDAConfig {
	empty := EmptyEDAConfig()
	return &EDAConfig{
		SourceURL:        ptrString(empty.GetSourceURL()),
		FetchTimeout:     ptrString(empty.GetFetchTimeout().String()),
		MissingThreshold: ptrFloat64(empty.GetMissingThreshold()),
		IQRMultiplier:    ptrFloat64(empty.GetIQRMultiplier()),
		OutputDir:        ptrString(empty.GetOutputDir()),
		HistogramBins:    ptrInt(empty.GetHistogramBins()),
		HeadRows:         ptrInt(empty.GetHeadRows()),
		Dashboard:        ptrBool(empty.GetDashboard()),
	}
}

// LoadEDAConfig loads an EDAConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadEDAConfig(path string) (*EDAConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyEDAConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *EDAConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadEDAConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *EDAConfig) Validate() error {
	if c.SourceURL != nil && *c.SourceURL == "" {
		return fmt.Errorf("source_url must not be empty")
	}

	if c.FetchTimeout != nil && *c.FetchTimeout != "" {
		d, err := time.ParseDuration(*c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout '%s': %w", *c.FetchTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("fetch_timeout must be positive, got %s", d)
		}
	}

	if c.MissingThreshold != nil {
		if *c.MissingThreshold <= 0 || *c.MissingThreshold > 1 {
			return fmt.Errorf("missing_threshold must be in (0, 1], got %f", *c.MissingThreshold)
		}
	}

	if c.IQRMultiplier != nil && *c.IQRMultiplier <= 0 {
		return fmt.Errorf("iqr_multiplier must be positive, got %f", *c.IQRMultiplier)
	}

	if c.HistogramBins != nil && *c.HistogramBins < 1 {
		return fmt.Errorf("histogram_bins must be at least 1, got %d", *c.HistogramBins)
	}

	if c.HeadRows != nil && *c.HeadRows < 0 {
		return fmt.Errorf("head_rows must be non-negative, got %d", *c.HeadRows)
	}

	return nil
}

// GetSourceURL returns the source_url value or the public Titanic CSV.
func (c *EDAConfig) GetSourceURL() string {
	if c.SourceURL == nil || *c.SourceURL == "" {
		return dataset.DefaultSourceURL
	}
	return *c.SourceURL
}

// GetFetchTimeout parses and returns FetchTimeout as a time.Duration.
func (c *EDAConfig) GetFetchTimeout() time.Duration {
	if c.FetchTimeout == nil || *c.FetchTimeout == "" {
		return httputil.DefaultTimeout
	}
	d, err := time.ParseDuration(*c.FetchTimeout)
	if err != nil {
		return httputil.DefaultTimeout // default on parse error
	}
	return d
}

// GetMissingThreshold returns the missing_threshold value or the default.
func (c *EDAConfig) GetMissingThreshold() float64 {
	if c.MissingThreshold == nil {
		return cleaning.DefaultMissingThreshold
	}
	return *c.MissingThreshold
}

// GetIQRMultiplier returns the iqr_multiplier value or the default.
func (c *EDAConfig) GetIQRMultiplier() float64 {
	if c.IQRMultiplier == nil {
		return cleaning.DefaultIQRMultiplier
	}
	return *c.IQRMultiplier
}

// GetOutputDir returns the output_dir value or the current directory.
func (c *EDAConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "."
	}
	return *c.OutputDir
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *EDAConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return render.DefaultBins
	}
	return *c.HistogramBins
}

// GetHeadRows returns the head_rows value or the default.
func (c *EDAConfig) GetHeadRows() int {
	if c.HeadRows == nil {
		return 5
	}
	return *c.HeadRows
}

// GetDashboard returns the dashboard value or the default.
func (c *EDAConfig) GetDashboard() bool {
	if c.Dashboard == nil {
		return true // default: write the HTML dashboard
	}
	return *c.Dashboard
}
