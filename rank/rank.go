// Package rank 评估每个候选特征单独预测 target 的能力，并按误差升序排序。
package rank

import (
	"cmp"
	"context"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/sweep"
)

// sortRanking 稳定排序：成功的特征按 RMSE 升序在前，失败的特征保持原列顺序排在最后。
// RMSE 完全相同的特征保持原列顺序。
func sortRanking(r core.Ranking) {
	slices.SortStableFunc(r, func(a, b core.FeatureScore) int {
		switch {
		case a.OK() && !b.OK():
			return -1
		case !a.OK() && b.OK():
			return 1
		case !a.OK():
			return 0
		}
		return cmp.Compare(a.RMSE, b.RMSE)
	})
}

func candidates(ectx *core.EvalContext) ([]string, error) {
	features, err := ectx.Table.Features(ectx.Config.Target)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, core.ErrInvalidInput(core.ModuleRank, "table has no candidate feature columns")
	}
	return features, nil
}

// SingleFeature 对每个候选特征单独 fit（近邻数 k，k <= 0 时用 Config.DefaultK），
// 返回按 RMSE 升序的 Ranking。各特征相互独立，可并发评估。
func SingleFeature(ctx context.Context, ectx *core.EvalContext, k int) (core.Ranking, error) {
	if k <= 0 {
		k = ectx.Config.DefaultK
	}
	features, err := candidates(ectx)
	if err != nil {
		return nil, err
	}

	ranking := make(core.Ranking, len(features))
	err = sweep.ForEach(ctx, ectx.Config.Concurrency, len(features), func(ctx context.Context, i int) error {
		f := features[i]
		trial, err := sweep.Evaluate(ctx, ectx, f, []string{f}, k)
		if err != nil {
			return err
		}
		ranking[i] = core.FeatureScore{Feature: f, RMSE: trial.RMSE, Err: trial.Err}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortRanking(ranking)
	return ranking, nil
}

// Average 对每个候选特征扫描全部 ks，以成功 trial 的平均 RMSE 排序（聚合视图）。
// 第二个返回值是以特征名为标签的扫描明细（保持原列顺序）。
// 所有 k 都失败的特征带上第一个失败 trial 的错误，排在最后。
func Average(ctx context.Context, ectx *core.EvalContext, ks []int) (core.Ranking, *core.ResultSet, error) {
	if len(ks) == 0 {
		ks = ectx.Config.KCandidates
	}
	if err := core.ValidateKs(ks); err != nil {
		return nil, nil, err
	}
	features, err := candidates(ectx)
	if err != nil {
		return nil, nil, err
	}

	slots := make([]core.KSweep, len(features))
	for i := range slots {
		slots[i] = make(core.KSweep, len(ks))
	}
	err = sweep.ForEach(ctx, ectx.Config.Concurrency, len(features)*len(ks), func(ctx context.Context, i int) error {
		fi, ki := i/len(ks), i%len(ks)
		f := features[fi]
		trial, err := sweep.Evaluate(ctx, ectx, f, []string{f}, ks[ki])
		if err != nil {
			return err
		}
		slots[fi][ki] = trial
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	details := core.NewResultSet()
	ranking := make(core.Ranking, len(features))
	for i, f := range features {
		details.Put(f, slots[i])
		ranking[i] = averageScore(f, slots[i])
	}
	sortRanking(ranking)
	return ranking, details, nil
}

func averageScore(feature string, s core.KSweep) core.FeatureScore {
	var rmses []float64
	var firstErr error
	for _, t := range s {
		if t.OK() {
			rmses = append(rmses, t.RMSE)
		} else if firstErr == nil {
			firstErr = t.Err
		}
	}
	if len(rmses) == 0 {
		return core.FeatureScore{Feature: feature, Err: firstErr}
	}
	return core.FeatureScore{Feature: feature, RMSE: stat.Mean(rmses, nil)}
}
