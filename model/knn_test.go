package model

import (
	"math"
	"testing"

	"github.com/rushteam/featsweep/core"
)

func TestKNNRegressor_Predict(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {10}, {11}}
	y := []float64{0, 10, 20, 100, 110}

	tests := []struct {
		name  string
		k     int
		query [][]float64
		want  []float64
	}{
		{name: "k=1 exact", k: 1, query: [][]float64{{2}, {10}}, want: []float64{20, 100}},
		{name: "k=2 mean", k: 2, query: [][]float64{{10.4}}, want: []float64{105}},
		{name: "k=3 mean", k: 3, query: [][]float64{{0.9}}, want: []float64{10}},
		{name: "k=all", k: 5, query: [][]float64{{-5}}, want: []float64{48}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewKNNRegressor().Fit(X, y, tt.k)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			got, err := p.Predict(tt.query)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Predict()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKNNRegressor_TiesPreferEarlierRows(t *testing.T) {
	// 查询点到 1 和 3 的距离相同，k=1 应选下标更小的训练样本
	X := [][]float64{{1}, {3}}
	y := []float64{5, 7}
	p, err := NewKNNRegressor().Fit(X, y, 1)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, _ := p.Predict([][]float64{{2}})
		if got[0] != 5 {
			t.Fatalf("Predict() = %v, want 5", got[0])
		}
	}
}

func TestKNNRegressor_MultiFeatureParallel(t *testing.T) {
	var X, Q [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		X = append(X, []float64{float64(i), float64(i % 3)})
		y = append(y, float64(i*2))
		Q = append(Q, []float64{float64(i), float64(i % 3)})
	}
	seq, err := (&KNNRegressor{Workers: 1}).Fit(X, y, 1)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	par, err := (&KNNRegressor{Workers: 7}).Fit(X, y, 1)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	a, _ := seq.Predict(Q)
	b, _ := par.Predict(Q)
	for i := range a {
		if a[i] != b[i] || a[i] != y[i] {
			t.Fatalf("row %d: seq=%v par=%v want %v", i, a[i], b[i], y[i])
		}
	}
}

func TestKNNRegressor_FitErrors(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		y    []float64
		k    int
	}{
		{name: "k exceeds rows", X: [][]float64{{1}, {2}}, y: []float64{1, 2}, k: 3},
		{name: "zero k", X: [][]float64{{1}}, y: []float64{1}, k: 0},
		{name: "length mismatch", X: [][]float64{{1}, {2}}, y: []float64{1}, k: 1},
		{name: "empty", X: nil, y: nil, k: 1},
		{name: "ragged", X: [][]float64{{1, 2}, {3}}, y: []float64{1, 2}, k: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKNNRegressor().Fit(tt.X, tt.y, tt.k)
			if !core.IsFitError(err) {
				t.Errorf("Fit() error = %v, want FIT_ERROR", err)
			}
		})
	}
}

func TestKNNRegressor_PredictWidthMismatch(t *testing.T) {
	p, err := NewKNNRegressor().Fit([][]float64{{1, 2}, {3, 4}}, []float64{1, 2}, 1)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := p.Predict([][]float64{{1}}); !core.IsFitError(err) {
		t.Errorf("Predict() error = %v, want FIT_ERROR", err)
	}
}
