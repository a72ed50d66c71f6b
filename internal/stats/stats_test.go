package stats

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestQuantile(t *testing.T) {
	values := []float64{7.25, 71.2833, 7.925, 53.1, 8.05, 8.4583, 51.8625, 21.075, 11.1333, 30.0708, 263, 80}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"min", 0, 7.25},
		{"q1", 0.25, 8.356225},
		{"median", 0.5, 25.5729},
		{"q3", 0.75, 57.645825},
		{"max", 1, 263},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantile(values, tt.p)
			if err != nil {
				t.Fatalf("Quantile failed: %v", err)
			}
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Quantile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if values[0] != 7.25 || values[10] != 263 {
		t.Error("Quantile must not reorder its input")
	}
}

func TestQuantile_Errors(t *testing.T) {
	if _, err := Quantile(nil, 0.5); !errors.Is(err, ErrNoData) {
		t.Errorf("empty input: err = %v, want ErrNoData", err)
	}
	if _, err := Quantile([]float64{1}, 1.5); err == nil {
		t.Error("expected error for p > 1")
	}
}

func TestQuantile_Single(t *testing.T) {
	got, err := Quantile([]float64{42}, 0.25)
	if err != nil || got != 42 {
		t.Errorf("Quantile single = %v, %v", got, err)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"ages", []float64{22, 38, 26, 35, 35, 54, 2, 14, 19, 38, 35}, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			if err != nil {
				t.Fatalf("Median failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Median = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuartiles(t *testing.T) {
	q1, q3, err := Quartiles([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Quartiles failed: %v", err)
	}
	if q1 != 2 || q3 != 4 {
		t.Errorf("Quartiles = %v, %v, want 2, 4", q1, q3)
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{0, 1, 1, 0})
	if err != nil || got != 0.5 {
		t.Errorf("Mean = %v, %v, want 0.5", got, err)
	}
	if _, err := Mean(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"clear winner", []string{"S", "C", "S", "Q", "S"}, "S"},
		{"tie picks smallest", []string{"S", "C", "C", "S"}, "C"},
		{"single", []string{"Q"}, "Q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mode(tt.values)
			if err != nil {
				t.Fatalf("Mode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Mode = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Mode(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestCounts(t *testing.T) {
	keys, counts := Counts([]float64{3, 1, 3, 2, 3, 1})
	wantKeys := []float64{1, 2, 3}
	wantCounts := []int{2, 1, 3}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] || counts[i] != wantCounts[i] {
			t.Errorf("entry %d = (%v, %d), want (%v, %d)", i, keys[i], counts[i], wantKeys[i], wantCounts[i])
		}
	}
}

func TestRange(t *testing.T) {
	lo, hi, err := Range([]float64{3, -1, 7})
	if err != nil || lo != -1 || hi != 7 {
		t.Errorf("Range = %v, %v, %v", lo, hi, err)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x      float64
		places int
		want   float64
	}{
		{-65.578175, 2, -65.58},
		{131.580225, 2, 131.58},
		{38.383838, 2, 38.38},
		{0.125, 2, 0.13},
		{28, 2, 28},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.places, got, tt.want)
		}
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	got, err := Correlation(x, []float64{2, 4, 6, 8})
	if err != nil || !almostEqual(got, 1, 1e-12) {
		t.Errorf("perfect positive = %v, %v", got, err)
	}
	got, err = Correlation(x, []float64{8, 6, 4, 2})
	if err != nil || !almostEqual(got, -1, 1e-12) {
		t.Errorf("perfect negative = %v, %v", got, err)
	}
	if _, err := Correlation(x, []float64{1}); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestCorrelationMatrix(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{5, 4, 3, 2, 1}
	c := []float64{2, 1, 4, 3, 5}

	m, err := CorrelationMatrix([][]float64{a, b, c})
	if err != nil {
		t.Fatalf("CorrelationMatrix failed: %v", err)
	}
	if n := m.SymmetricDim(); n != 3 {
		t.Fatalf("dim = %d, want 3", n)
	}
	for i := 0; i < 3; i++ {
		if !almostEqual(m.At(i, i), 1, 1e-12) {
			t.Errorf("diag[%d] = %v, want 1", i, m.At(i, i))
		}
	}
	if !almostEqual(m.At(0, 1), -1, 1e-12) {
		t.Errorf("corr(a,b) = %v, want -1", m.At(0, 1))
	}
	want, _ := Correlation(a, c)
	if !almostEqual(m.At(0, 2), want, 1e-12) || !almostEqual(m.At(2, 0), want, 1e-12) {
		t.Errorf("corr(a,c) = %v / %v, want %v", m.At(0, 2), m.At(2, 0), want)
	}
}

func TestCorrelationMatrix_ZeroVariance(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	flat := []float64{7, 7, 7, 7}

	m, err := CorrelationMatrix([][]float64{a, flat})
	if err != nil {
		t.Fatalf("CorrelationMatrix failed: %v", err)
	}
	if m.At(0, 0) != 1 || m.At(1, 1) != 1 {
		t.Errorf("diagonal = %v, %v; want 1, 1", m.At(0, 0), m.At(1, 1))
	}
	if !math.IsNaN(m.At(0, 1)) || !math.IsNaN(m.At(1, 0)) {
		t.Errorf("corr(a, flat) = %v, want NaN", m.At(0, 1))
	}
}

func TestCorrelationMatrix_Errors(t *testing.T) {
	if _, err := CorrelationMatrix(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
	if _, err := CorrelationMatrix([][]float64{{1, 2, 3}, {1, 2}}); err == nil {
		t.Error("expected ragged column error")
	}
}

func TestNamedCorrelation(t *testing.T) {
	names := []string{"a", "b", "c"}
	cols := [][]float64{
		{1, 2, 3, 4},
		{2, 4, 6, 8},
		{4, 3, 2, 1},
	}
	m, err := NewNamedCorrelation(names, cols)
	if err != nil {
		t.Fatalf("NewNamedCorrelation: %v", err)
	}

	if got := m.Index("c"); got != 2 {
		t.Errorf("Index(c) = %d, want 2", got)
	}
	if got := m.Index("zzz"); got != -1 {
		t.Errorf("Index(zzz) = %d, want -1", got)
	}

	ab, err := m.At("a", "b")
	if err != nil || !almostEqual(ab, 1, 1e-12) {
		t.Errorf("At(a, b) = %v, %v; want 1", ab, err)
	}
	ca, err := m.At("c", "a")
	if err != nil || !almostEqual(ca, -1, 1e-12) {
		t.Errorf("At(c, a) = %v, %v; want -1", ca, err)
	}
	if _, err := m.At("a", "zzz"); err == nil {
		t.Error("expected error for unknown name")
	}

	names[0] = "mutated"
	if m.Names[0] != "a" {
		t.Error("NamedMatrix shares the caller's names slice")
	}
}

func TestNamedCorrelation_Mismatch(t *testing.T) {
	if _, err := NewNamedCorrelation([]string{"a"}, [][]float64{{1, 2}, {3, 4}}); err == nil {
		t.Error("expected error for name/column count mismatch")
	}
}
