// Package sweep 负责单个 trial 的评估，以及 k 超参扫描和特征子集扫描。
package sweep

import (
	"context"
	"errors"
	"math"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/metrics"
	"github.com/rushteam/featsweep/split"
)

var errNonFinite = errors.New("regressor produced a non-finite error value")

// Evaluate 执行一次 trial：切分 → fit → predict → RMSE。
//
// 切分每次都用配置中的种子重新生成，因此所有 trial 共享同一训练 / 测试划分。
// 回归器失败记录在返回 Trial 的 Err 中（FitError），error 返回值只用于
// INVALID_INPUT / SHAPE_MISMATCH 以及 ctx 取消，这些错误应终止整个流程。
func Evaluate(ctx context.Context, ectx *core.EvalContext, label string, features []string, k int) (core.Trial, error) {
	trial := core.Trial{
		Label:    label,
		Features: append([]string(nil), features...),
		K:        k,
	}
	if err := ctx.Err(); err != nil {
		return trial, err
	}
	if err := checkFeatures(ectx, features); err != nil {
		return trial, err
	}

	var key string
	if ectx.Cache != nil {
		key = trialKey(ectx, features, k)
		if rmse, ok := loadCached(ctx, ectx, key); ok {
			trial.RMSE = rmse
			return trial, nil
		}
	}

	part, err := split.Table(ectx.Table, ectx.Config.Seed)
	if err != nil {
		return trial, err
	}
	target := ectx.Config.Target
	xTrain, err := ectx.Table.Matrix(part.Train, features)
	if err != nil {
		return trial, err
	}
	yTrain, err := ectx.Table.Vector(part.Train, target)
	if err != nil {
		return trial, err
	}
	xTest, err := ectx.Table.Matrix(part.Test, features)
	if err != nil {
		return trial, err
	}
	yTest, err := ectx.Table.Vector(part.Test, target)
	if err != nil {
		return trial, err
	}

	predictor, err := ectx.Regressor.Fit(xTrain, yTrain, k)
	if err != nil {
		return failed(ectx, trial, err), nil
	}
	predicted, err := predictor.Predict(xTest)
	if err != nil {
		return failed(ectx, trial, err), nil
	}

	rmse, err := metrics.RMSE(predicted, yTest)
	if err != nil {
		return trial, err
	}
	if math.IsNaN(rmse) || math.IsInf(rmse, 0) {
		return failed(ectx, trial, errNonFinite), nil
	}
	trial.RMSE = rmse

	if ectx.Cache != nil {
		storeCached(ctx, ectx, key, rmse)
	}
	return trial, nil
}

func failed(ectx *core.EvalContext, trial core.Trial, err error) core.Trial {
	trial.Err = &core.FitError{Label: trial.Label, K: trial.K, Features: trial.Features, Err: err}
	ectx.Log().Warn().
		Err(err).
		Str("label", trial.Label).
		Int("k", trial.K).
		Strs("features", trial.Features).
		Msg("trial failed")
	return trial
}

// checkFeatures 拒绝空子集、重复特征、不存在的列以及 target 自身。
func checkFeatures(ectx *core.EvalContext, features []string) error {
	if len(features) == 0 {
		return core.ErrInvalidInput(core.ModuleSweep, "feature subset is empty")
	}
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == ectx.Config.Target {
			return core.ErrInvalidInput(core.ModuleSweep, "target column %q used as a feature", f)
		}
		if !ectx.Table.HasColumn(f) {
			return core.ErrInvalidInput(core.ModuleSweep, "feature column %q not found", f)
		}
		if _, dup := seen[f]; dup {
			return core.ErrInvalidInput(core.ModuleSweep, "duplicate feature %q", f)
		}
		seen[f] = struct{}{}
	}
	return nil
}
