// Package metrics 提供回归评估指标 RMSE。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rushteam/featsweep/core"
)

func check(predicted, actual []float64) error {
	if len(predicted) != len(actual) {
		return core.ErrShapeMismatch(core.ModuleMetrics, "predicted has %d values, actual has %d", len(predicted), len(actual))
	}
	if len(actual) == 0 {
		return core.ErrInvalidInput(core.ModuleMetrics, "empty sequences")
	}
	return nil
}

// RMSE 计算 sqrt(mean((predicted_i - actual_i)^2))。
// 使用带缩放的 L2 范数（floats.Norm），大数值下不会溢出。
func RMSE(predicted, actual []float64) (float64, error) {
	if err := check(predicted, actual); err != nil {
		return 0, err
	}
	diff := make([]float64, len(actual))
	floats.SubTo(diff, predicted, actual)
	return floats.Norm(diff, 2) / math.Sqrt(float64(len(actual))), nil
}
