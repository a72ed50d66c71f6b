package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/survival.report/internal/cleaning"
	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/httputil"
	"github.com/banshee-data/survival.report/internal/render"
)

func TestDefaultEDAConfig(t *testing.T) {
	cfg := DefaultEDAConfig()

	if cfg.SourceURL == nil || *cfg.SourceURL != dataset.DefaultSourceURL {
		t.Errorf("Expected SourceURL %q, got %v", dataset.DefaultSourceURL, cfg.SourceURL)
	}
	if cfg.MissingThreshold == nil || *cfg.MissingThreshold != 0.5 {
		t.Errorf("Expected MissingThreshold 0.5, got %v", cfg.MissingThreshold)
	}
	if cfg.IQRMultiplier == nil || *cfg.IQRMultiplier != 1.5 {
		t.Errorf("Expected IQRMultiplier 1.5, got %v", cfg.IQRMultiplier)
	}
	if cfg.HistogramBins == nil || *cfg.HistogramBins != 20 {
		t.Errorf("Expected HistogramBins 20, got %v", cfg.HistogramBins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultsFileMatchesCode(t *testing.T) {
	fromFile := MustLoadDefaultConfig()
	if diff := cmp.Diff(DefaultEDAConfig(), fromFile); diff != "" {
		t.Errorf("%s drifted from DefaultEDAConfig (-code +file):\n%s", DefaultConfigPath, diff)
	}
}

func TestLoadEDAConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "eda.json")

	testJSON := `{
  "source_url": "http://localhost:8080/titanic.csv",
  "missing_threshold": 0.7,
  "histogram_bins": 30,
  "dashboard": false
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadEDAConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetSourceURL(); got != "http://localhost:8080/titanic.csv" {
		t.Errorf("GetSourceURL() = %q", got)
	}
	if got := cfg.GetMissingThreshold(); got != 0.7 {
		t.Errorf("GetMissingThreshold() = %v, want 0.7", got)
	}
	if got := cfg.GetHistogramBins(); got != 30 {
		t.Errorf("GetHistogramBins() = %d, want 30", got)
	}
	if cfg.GetDashboard() {
		t.Error("GetDashboard() = true, want false")
	}
	// Unset fields fall back to defaults.
	if got := cfg.GetIQRMultiplier(); got != 1.5 {
		t.Errorf("GetIQRMultiplier() = %v, want 1.5", got)
	}
	if got := cfg.GetOutputDir(); got != "." {
		t.Errorf("GetOutputDir() = %q, want .", got)
	}
}

func TestLoadEDAConfigMissing(t *testing.T) {
	_, err := LoadEDAConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadEDAConfigWrongExtension(t *testing.T) {
	_, err := LoadEDAConfig("config.yaml")
	if err == nil || !strings.Contains(err.Error(), ".json") {
		t.Errorf("Expected extension error, got %v", err)
	}
}

func TestLoadEDAConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"missing_threshold": `},
		{"wrong type", `{"histogram_bins": "twenty"}`},
		{"fails validation", `{"iqr_multiplier": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			if _, err := LoadEDAConfig(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *EDAConfig
		wantErr bool
	}{
		{"valid config", DefaultEDAConfig(), false},
		{"empty config is valid", &EDAConfig{}, false},
		{"empty source url", &EDAConfig{SourceURL: ptrString("")}, true},
		{"zero threshold", &EDAConfig{MissingThreshold: ptrFloat64(0)}, true},
		{"threshold above one", &EDAConfig{MissingThreshold: ptrFloat64(1.01)}, true},
		{"threshold of one", &EDAConfig{MissingThreshold: ptrFloat64(1)}, false},
		{"zero multiplier", &EDAConfig{IQRMultiplier: ptrFloat64(0)}, true},
		{"zero bins", &EDAConfig{HistogramBins: ptrInt(0)}, true},
		{"negative head rows", &EDAConfig{HeadRows: ptrInt(-1)}, true},
		{"bad timeout", &EDAConfig{FetchTimeout: ptrString("soon")}, true},
		{"negative timeout", &EDAConfig{FetchTimeout: ptrString("-1s")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetFetchTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  *EDAConfig
		want time.Duration
	}{
		{"30 seconds", &EDAConfig{FetchTimeout: ptrString("30s")}, 30 * time.Second},
		{"nil pointer returns default", &EDAConfig{}, 60 * time.Second},
		{"empty string returns default", &EDAConfig{FetchTimeout: ptrString("")}, 60 * time.Second},
		{"invalid duration returns default", &EDAConfig{FetchTimeout: ptrString("invalid")}, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetFetchTimeout(); got != tt.want {
				t.Errorf("GetFetchTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetters_Defaults(t *testing.T) {
	cfg := EmptyEDAConfig()
	if cfg.GetHeadRows() != 5 {
		t.Errorf("GetHeadRows() = %d, want 5", cfg.GetHeadRows())
	}
	if !cfg.GetDashboard() {
		t.Error("GetDashboard() = false, want true")
	}
	if cfg.GetOutputDir() != "." {
		t.Errorf("GetOutputDir() = %q, want .", cfg.GetOutputDir())
	}
}

func TestGetters_MatchStageDefaults(t *testing.T) {
	cfg := EmptyEDAConfig()
	if got := cfg.GetMissingThreshold(); got != cleaning.DefaultMissingThreshold {
		t.Errorf("GetMissingThreshold() = %v, want %v", got, cleaning.DefaultMissingThreshold)
	}
	if got := cfg.GetIQRMultiplier(); got != cleaning.DefaultIQRMultiplier {
		t.Errorf("GetIQRMultiplier() = %v, want %v", got, cleaning.DefaultIQRMultiplier)
	}
	if got := cfg.GetHistogramBins(); got != render.DefaultBins {
		t.Errorf("GetHistogramBins() = %d, want %d", got, render.DefaultBins)
	}
	if got := cfg.GetFetchTimeout(); got != httputil.DefaultTimeout {
		t.Errorf("GetFetchTimeout() = %v, want %v", got, httputil.DefaultTimeout)
	}

	opts := cleaning.DefaultOptions()
	if opts.MissingThreshold != cfg.GetMissingThreshold() || opts.IQRMultiplier != cfg.GetIQRMultiplier() {
		t.Errorf("cleaning.DefaultOptions() = %+v, config defaults disagree", opts)
	}
}
