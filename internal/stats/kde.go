package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ScottBandwidth returns the Gaussian kernel bandwidth from Scott's rule,
// sd * n^(-1/5), using the sample standard deviation.
func ScottBandwidth(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil) * math.Pow(n, -0.2)
}

// KDE evaluates a Gaussian kernel density estimate of values at points
// evenly spaced over [lo, hi]. It returns nil when the bandwidth is
// degenerate (fewer than two values, or zero variance).
func KDE(values []float64, lo, hi float64, points int) (xs, ys []float64) {
	bw := ScottBandwidth(values)
	if math.IsNaN(bw) || bw <= 0 || points < 2 {
		return nil, nil
	}

	xs = make([]float64, points)
	floats.Span(xs, lo, hi)
	ys = make([]float64, points)

	kernels := make([]distuv.Normal, len(values))
	for i, v := range values {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}
	inv := 1 / float64(len(values))
	for i, x := range xs {
		var sum float64
		for _, k := range kernels {
			sum += k.Prob(x)
		}
		ys[i] = sum * inv
	}
	return xs, ys
}
