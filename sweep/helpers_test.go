package sweep

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/model"
)

// fixtureTable 返回 20 行、特征 A/B/C/D、target T 的全数值表。
func fixtureTable(t *testing.T) *core.Table {
	t.Helper()
	rows := make([][]float64, 20)
	for i := range rows {
		a := float64(i)
		b := float64((i * 7) % 20)
		c := math.Sin(float64(i))
		d := float64(i % 2)
		rows[i] = []float64{a, b, c, d, 2*a + b/2 + d}
	}
	tbl, err := core.NewTable([]string{"A", "B", "C", "D", "T"}, rows)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func fixtureContext(t *testing.T) *core.EvalContext {
	t.Helper()
	cfg := core.DefaultEvalConfig()
	cfg.Target = "T"
	return &core.EvalContext{
		Table:     fixtureTable(t),
		Config:    cfg,
		Regressor: model.NewKNNRegressor(),
	}
}

// countingRegressor 统计 Fit 调用次数。
type countingRegressor struct {
	core.Regressor
	fits atomic.Int64
}

func (r *countingRegressor) Fit(X [][]float64, y []float64, k int) (core.Predictor, error) {
	r.fits.Add(1)
	return r.Regressor.Fit(X, y, k)
}

// shortRegressor 的预测比输入少一行，用于触发 SHAPE_MISMATCH。
type shortRegressor struct{}

func (shortRegressor) Name() string { return "short" }

func (shortRegressor) Fit(X [][]float64, y []float64, k int) (core.Predictor, error) {
	return shortPredictor{}, nil
}

type shortPredictor struct{}

func (shortPredictor) Predict(X [][]float64) ([]float64, error) {
	return make([]float64, len(X)-1), nil
}
