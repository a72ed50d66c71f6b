// Package stats holds the descriptive statistics used by the cleaning and
// report stages. Quantiles use linear interpolation between order
// statistics (Hyndman-Fan type 7), which is what pandas and numpy default to.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when a statistic is requested over zero values.
var ErrNoData = errors.New("no data")

// Quantile returns the p-quantile of values, 0 <= p <= 1. values is not modified.
func Quantile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return math.NaN(), ErrNoData
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN(), fmt.Errorf("quantile %v out of range [0,1]", p)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p), nil
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Quartiles returns Q1 and Q3 of values.
func Quartiles(values []float64) (q1, q3 float64, err error) {
	if len(values) == 0 {
		return math.NaN(), math.NaN(), ErrNoData
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, 0.25), quantileSorted(sorted, 0.75), nil
}

// Median returns the middle value; even-length input averages the two
// middle values.
func Median(values []float64) (float64, error) {
	return Quantile(values, 0.5)
}

// Mean returns the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return math.NaN(), ErrNoData
	}
	return stat.Mean(values, nil), nil
}

// Mode returns the most frequent string. Ties go to the lexicographically
// smallest value so the result is deterministic.
func Mode(values []string) (string, error) {
	if len(values) == 0 {
		return "", ErrNoData
	}
	counts := make(map[string]int, 8)
	for _, v := range values {
		counts[v]++
	}
	best, bestN := "", 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, nil
}

// Counts tallies each distinct float value, returned in ascending key order.
func Counts(values []float64) (keys []float64, counts []int) {
	m := make(map[float64]int)
	for _, v := range values {
		m[v]++
	}
	keys = make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	counts = make([]int, len(keys))
	for i, k := range keys {
		counts[i] = m[k]
	}
	return keys, counts
}

// Range returns the minimum and maximum of values.
func Range(values []float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return math.NaN(), math.NaN(), ErrNoData
	}
	return floats.Min(values), floats.Max(values), nil
}

// Round rounds x to the given number of decimal places, half away from zero.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// Correlation returns the Pearson correlation coefficient of x and y.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return math.NaN(), fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return math.NaN(), ErrNoData
	}
	return stat.Correlation(x, y, nil), nil
}

// CorrelationMatrix computes the pairwise Pearson correlation of the given
// equal-length columns. The result is symmetric with ones on the diagonal.
// Off-diagonal cells involving a zero-variance column are NaN.
func CorrelationMatrix(columns [][]float64) (*mat.SymDense, error) {
	k := len(columns)
	if k == 0 {
		return nil, ErrNoData
	}
	n := len(columns[0])
	if n < 2 {
		return nil, ErrNoData
	}
	data := mat.NewDense(n, k, nil)
	for j, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("column %d has %d values, want %d", j, len(col), n)
		}
		data.SetCol(j, col)
	}
	var dst mat.SymDense
	stat.CorrelationMatrix(&dst, data, nil)
	return &dst, nil
}

// NamedMatrix is a correlation matrix labelled by column name.
type NamedMatrix struct {
	Names []string
	M     *mat.SymDense
}

// NewNamedCorrelation computes the correlation matrix of columns and labels
// it with names.
func NewNamedCorrelation(names []string, columns [][]float64) (*NamedMatrix, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%d names for %d columns", len(names), len(columns))
	}
	m, err := CorrelationMatrix(columns)
	if err != nil {
		return nil, err
	}
	return &NamedMatrix{Names: append([]string(nil), names...), M: m}, nil
}

// Index returns the position of name, or -1.
func (n *NamedMatrix) Index(name string) int {
	for i, v := range n.Names {
		if v == name {
			return i
		}
	}
	return -1
}

// At returns the coefficient for the pair (a, b).
func (n *NamedMatrix) At(a, b string) (float64, error) {
	i, j := n.Index(a), n.Index(b)
	if i < 0 || j < 0 {
		return math.NaN(), fmt.Errorf("no correlation for (%s, %s)", a, b)
	}
	return n.M.At(i, j), nil
}
