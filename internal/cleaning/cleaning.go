// Package cleaning imputes missing values, drops sparse columns, removes
// duplicate rows and caps outliers on a dataset.Table in place.
package cleaning

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/monitoring"
	"github.com/banshee-data/survival.report/internal/stats"
)

// Default thresholds.
const (
	DefaultMissingThreshold = 0.5
	DefaultIQRMultiplier    = 1.5
)

// ImputeMedian fills missing cells of a numeric column with the median of
// its valid cells and returns that median.
func ImputeMedian(t *dataset.Table, name string) (float64, error) {
	c, err := t.NumericColumn(name)
	if err != nil {
		return math.NaN(), err
	}
	values, _ := t.NumericValues(name)
	median, err := stats.Median(values)
	if err != nil {
		return math.NaN(), fmt.Errorf("median of %q: %w", name, err)
	}
	filled := 0
	for i, ok := range c.Valid {
		if !ok {
			c.Nums[i] = median
			c.Valid[i] = true
			filled++
		}
	}
	monitoring.Logf("imputed %d missing %s values with median %g", filled, name, median)
	return median, nil
}

// ImputeMode fills missing cells of a categorical column with its most
// frequent value and returns that value.
func ImputeMode(t *dataset.Table, name string) (string, error) {
	c, err := t.Column(name)
	if err != nil {
		return "", err
	}
	if c.Kind != dataset.Categorical {
		return "", fmt.Errorf("%w: %q is %s", dataset.ErrWrongKind, name, c.Kind)
	}
	values := make([]string, 0, c.Len())
	for i, ok := range c.Valid {
		if ok {
			values = append(values, c.Strs[i])
		}
	}
	mode, err := stats.Mode(values)
	if err != nil {
		return "", fmt.Errorf("mode of %q: %w", name, err)
	}
	filled := 0
	for i, ok := range c.Valid {
		if !ok {
			c.Strs[i] = mode
			c.Valid[i] = true
			filled++
		}
	}
	monitoring.Logf("imputed %d missing %s values with mode %q", filled, name, mode)
	return mode, nil
}

// Dropped records a column removed for being too sparse.
type Dropped struct {
	Column          string
	MissingFraction float64
}

// DropSparseColumns removes every column whose missing fraction is strictly
// greater than threshold.
func DropSparseColumns(t *dataset.Table, threshold float64) []Dropped {
	var dropped []Dropped
	for _, m := range t.MissingCounts() {
		if f := m.Fraction(); f > threshold {
			dropped = append(dropped, Dropped{Column: m.Column, MissingFraction: f})
		}
	}
	for _, d := range dropped {
		// Names came from the table itself.
		_ = t.DropColumn(d.Column)
		monitoring.Logf("dropped column %s (%.1f%% missing)", d.Column, d.MissingFraction*100)
	}
	return dropped
}

// RemoveDuplicates drops rows identical to an earlier row across every
// column, keeping the first occurrence. It returns the number removed.
func RemoveDuplicates(t *dataset.Table) int {
	n := t.NumRows()
	keep := make([]bool, n)
	seen := make(map[string]struct{}, n)
	removed := 0
	for i := 0; i < n; i++ {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	if removed > 0 {
		// keep has exactly NumRows entries.
		_ = t.Filter(keep)
	}
	monitoring.Logf("removed %d duplicate rows, %d remain", removed, t.NumRows())
	return removed
}

// Bounds are the IQR fences for a numeric column.
type Bounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Contains reports whether v lies within [Lower, Upper].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Clip returns v limited to [Lower, Upper].
func (b Bounds) Clip(v float64) float64 {
	return math.Min(math.Max(v, b.Lower), b.Upper)
}

// IQRBounds returns Q1 - k*IQR and Q3 + k*IQR for values.
func IQRBounds(values []float64, k float64) (Bounds, error) {
	q1, q3, err := stats.Quartiles(values)
	if err != nil {
		return Bounds{}, err
	}
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - k*iqr,
		Upper: q3 + k*iqr,
	}, nil
}

// OutlierResult summarises a capping pass.
type OutlierResult struct {
	Column string
	Bounds Bounds
	// Outliers counts values that were outside the bounds before capping.
	Outliers int
	// Below and Above split Outliers by side.
	Below int
	Above int
}

// CapOutliers computes IQR bounds over the valid cells of a numeric column
// and clips every value outside them to the nearest bound. No rows are removed.
func CapOutliers(t *dataset.Table, name string, k float64) (OutlierResult, error) {
	c, err := t.NumericColumn(name)
	if err != nil {
		return OutlierResult{}, err
	}
	values, _ := t.NumericValues(name)
	b, err := IQRBounds(values, k)
	if err != nil {
		return OutlierResult{}, fmt.Errorf("bounds of %q: %w", name, err)
	}

	res := OutlierResult{Column: name, Bounds: b}
	for i, v := range c.Nums {
		if !c.Valid[i] {
			continue
		}
		switch {
		case v < b.Lower:
			res.Below++
		case v > b.Upper:
			res.Above++
		default:
			continue
		}
		c.Nums[i] = b.Clip(v)
	}
	res.Outliers = res.Below + res.Above
	monitoring.Logf("capped %d %s outliers to [%.2f, %.2f]", res.Outliers, name, b.Lower, b.Upper)
	return res, nil
}

// Options control a full Clean pass.
type Options struct {
	MissingThreshold float64
	IQRMultiplier    float64
}

// DefaultOptions returns the thresholds used by the report.
func DefaultOptions() Options {
	return Options{
		MissingThreshold: DefaultMissingThreshold,
		IQRMultiplier:    DefaultIQRMultiplier,
	}
}

// Result captures everything the report needs to know about cleaning.
type Result struct {
	// Missing holds the per-column missing tallies taken before any change.
	Missing      []dataset.MissingStat
	RowsBefore   int
	AgeMedian    float64
	EmbarkedMode string
	Dropped      []Dropped
	Duplicates   int
	Fare         OutlierResult
}

// MissingFraction returns the pre-cleaning missing fraction of a column, or
// 0 when the column was not present.
func (r *Result) MissingFraction(name string) float64 {
	i := sort.Search(len(r.Missing), func(i int) bool { return r.Missing[i].Column >= name })
	if i < len(r.Missing) && r.Missing[i].Column == name {
		return r.Missing[i].Fraction()
	}
	return 0
}

// Clean runs the passenger cleaning sequence: impute Age by median,
// impute Embarked by mode, drop sparse columns, remove duplicate rows and
// cap Fare outliers.
func Clean(t *dataset.Table, opts Options) (*Result, error) {
	missing := t.MissingCounts()
	sort.Slice(missing, func(i, j int) bool { return missing[i].Column < missing[j].Column })
	res := &Result{Missing: missing, RowsBefore: t.NumRows()}

	var err error
	if res.AgeMedian, err = ImputeMedian(t, dataset.ColAge); err != nil {
		return nil, fmt.Errorf("impute age: %w", err)
	}
	if res.EmbarkedMode, err = ImputeMode(t, dataset.ColEmbarked); err != nil {
		return nil, fmt.Errorf("impute embarked: %w", err)
	}
	res.Dropped = DropSparseColumns(t, opts.MissingThreshold)
	res.Duplicates = RemoveDuplicates(t)
	if res.Fare, err = CapOutliers(t, dataset.ColFare, opts.IQRMultiplier); err != nil {
		return nil, fmt.Errorf("cap fare: %w", err)
	}
	return res, nil
}
