// Package report computes the headline statistics of a cleaned passenger
// table and writes them out as a markdown insights file and console tables.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/banshee-data/survival.report/internal/cleaning"
	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/stats"
)

// ClassRate is the survival rate of one passenger class.
type ClassRate struct {
	Class      string
	Passengers int
	Survivors  int
	Rate       float64
}

// Correlation is one feature's Pearson coefficient against Survived.
type Correlation struct {
	Feature string
	R       float64
}

// Strength buckets |R| into a plain-word description.
func (c Correlation) Strength() string {
	a := math.Abs(c.R)
	switch {
	case math.IsNaN(a):
		return "undefined"
	case a < 0.1:
		return "negligible"
	case a < 0.3:
		return "weak"
	case a < 0.5:
		return "moderate"
	default:
		return "strong"
	}
}

// Defined reports whether R is a number. R is NaN when either column is
// constant.
func (c Correlation) Defined() bool {
	return !math.IsNaN(c.R)
}

// Direction is "positive", "negative", or "undefined" for a NaN coefficient.
func (c Correlation) Direction() string {
	switch {
	case !c.Defined():
		return "undefined"
	case c.R < 0:
		return "negative"
	}
	return "positive"
}

// Summary holds every number quoted in the insights report. Percentages are
// on a 0-100 scale and rounded to two decimals.
type Summary struct {
	RunID       string
	GeneratedAt time.Time

	Rows int
	Cols int

	AgeMedian          float64
	EmbarkedMode       string
	AgeMissingPct      float64
	EmbarkedMissingPct float64
	CabinMissingPct    float64
	Dropped            []string
	Duplicates         int

	FareOutliers int
	FareLower    float64
	FareUpper    float64
	FareMedian   float64

	SurvivalRate float64
	ClassRates   []ClassRate

	PclassSurvived float64
	Correlations   []Correlation
}

// Stamp records the run identity on the summary.
func (s *Summary) Stamp(runID string, at time.Time) {
	s.RunID = runID
	s.GeneratedAt = at
}

// Compute derives the report statistics from the cleaned table t, the
// cleaning result and the correlation matrix of the cleaned table.
func Compute(t *dataset.Table, clean *cleaning.Result, corr *stats.NamedMatrix) (*Summary, error) {
	s := &Summary{
		Duplicates:         clean.Duplicates,
		AgeMissingPct:      pct(clean.MissingFraction(dataset.ColAge)),
		EmbarkedMissingPct: pct(clean.MissingFraction(dataset.ColEmbarked)),
		CabinMissingPct:    pct(clean.MissingFraction(dataset.ColCabin)),
		FareOutliers:       clean.Fare.Outliers,
		FareLower:          stats.Round(clean.Fare.Bounds.Lower, 2),
		FareUpper:          stats.Round(clean.Fare.Bounds.Upper, 2),
	}
	s.Rows, s.Cols = t.Shape()
	for _, d := range clean.Dropped {
		s.Dropped = append(s.Dropped, d.Column)
	}

	ages, err := t.NumericValues(dataset.ColAge)
	if err != nil {
		return nil, err
	}
	if s.AgeMedian, err = stats.Median(ages); err != nil {
		return nil, fmt.Errorf("age median: %w", err)
	}

	embarked, err := t.Column(dataset.ColEmbarked)
	if err != nil {
		return nil, err
	}
	if s.EmbarkedMode, err = stats.Mode(validStrings(embarked)); err != nil {
		return nil, fmt.Errorf("embarked mode: %w", err)
	}

	fares, err := t.NumericValues(dataset.ColFare)
	if err != nil {
		return nil, err
	}
	if s.FareMedian, err = stats.Median(fares); err != nil {
		return nil, fmt.Errorf("fare median: %w", err)
	}

	survived, err := t.NumericValues(dataset.ColSurvived)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(survived)
	if err != nil {
		return nil, fmt.Errorf("survival rate: %w", err)
	}
	s.SurvivalRate = stats.Round(mean*100, 2)

	if s.ClassRates, err = classRates(t); err != nil {
		return nil, err
	}

	if s.PclassSurvived, err = corr.At(dataset.ColPclass, dataset.ColSurvived); err != nil {
		return nil, err
	}
	for _, name := range corr.Names {
		if name == dataset.ColSurvived {
			continue
		}
		r, _ := corr.At(name, dataset.ColSurvived)
		s.Correlations = append(s.Correlations, Correlation{Feature: name, R: r})
	}
	return s, nil
}

// Correlation returns the coefficient of feature against Survived.
func (s *Summary) Correlation(feature string) (Correlation, bool) {
	for _, c := range s.Correlations {
		if c.Feature == feature {
			return c, true
		}
	}
	return Correlation{}, false
}

func classRates(t *dataset.Table) ([]ClassRate, error) {
	class, err := t.NumericColumn(dataset.ColPclass)
	if err != nil {
		return nil, err
	}
	survived, err := t.NumericColumn(dataset.ColSurvived)
	if err != nil {
		return nil, err
	}

	byClass := make(map[float64]*ClassRate)
	var keys []float64
	for i := range class.Nums {
		if !class.Valid[i] || !survived.Valid[i] {
			continue
		}
		k := class.Nums[i]
		cr, ok := byClass[k]
		if !ok {
			cr = &ClassRate{Class: class.Cell(i)}
			byClass[k] = cr
			keys = append(keys, k)
		}
		cr.Passengers++
		if survived.Nums[i] == 1 {
			cr.Survivors++
		}
	}

	keys, _ = stats.Counts(keys)
	out := make([]ClassRate, len(keys))
	for i, k := range keys {
		cr := byClass[k]
		cr.Rate = stats.Round(100*float64(cr.Survivors)/float64(cr.Passengers), 2)
		out[i] = *cr
	}
	return out, nil
}

func validStrings(c *dataset.Column) []string {
	out := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.Valid[i] {
			out = append(out, c.Cell(i))
		}
	}
	return out
}

func pct(fraction float64) float64 { return stats.Round(fraction*100, 2) }
