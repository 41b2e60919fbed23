// Package model 提供 core.Regressor 的本地实现。
package model

import "github.com/rushteam/featsweep/core"

var _ core.Regressor = (*KNNRegressor)(nil)

// checkMatrix 校验矩阵非空且每行宽度一致，返回列数。
func checkMatrix(X [][]float64) (int, error) {
	if len(X) == 0 {
		return 0, core.ErrFit(core.ModuleModel, "empty feature matrix")
	}
	width := len(X[0])
	if width == 0 {
		return 0, core.ErrFit(core.ModuleModel, "feature matrix has no columns")
	}
	for i, row := range X {
		if len(row) != width {
			return 0, core.ErrFit(core.ModuleModel, "row %d has %d features, want %d", i, len(row), width)
		}
	}
	return width, nil
}
