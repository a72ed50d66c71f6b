package stats

import (
	"math"
	"testing"
)

func TestScottBandwidth(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	// sample sd = sqrt(32/7)
	want := math.Sqrt(32.0/7.0) * math.Pow(8, -0.2)
	if got := ScottBandwidth(values); !almostEqual(got, want, 1e-12) {
		t.Errorf("ScottBandwidth = %v, want %v", got, want)
	}
	if !math.IsNaN(ScottBandwidth([]float64{1})) {
		t.Error("single value should give NaN bandwidth")
	}
}

func TestKDE_IntegratesToOne(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	bw := ScottBandwidth(values)
	lo, hi := 1-6*bw, 5+6*bw

	xs, ys := KDE(values, lo, hi, 2000)
	if len(xs) != 2000 || len(ys) != 2000 {
		t.Fatalf("got %d/%d points, want 2000", len(xs), len(ys))
	}
	if xs[0] != lo || xs[len(xs)-1] != hi {
		t.Errorf("grid = [%v, %v], want [%v, %v]", xs[0], xs[len(xs)-1], lo, hi)
	}

	// trapezoid rule
	var area float64
	for i := 1; i < len(xs); i++ {
		area += (xs[i] - xs[i-1]) * (ys[i] + ys[i-1]) / 2
	}
	if !almostEqual(area, 1, 1e-3) {
		t.Errorf("KDE area = %v, want ~1", area)
	}
}

func TestKDE_Degenerate(t *testing.T) {
	if xs, ys := KDE([]float64{3, 3, 3}, 0, 5, 10); xs != nil || ys != nil {
		t.Error("zero-variance input should return nil")
	}
	if xs, _ := KDE([]float64{1, 2}, 0, 5, 1); xs != nil {
		t.Error("fewer than two points should return nil")
	}
}
