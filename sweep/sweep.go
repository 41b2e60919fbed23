package sweep

import (
	"context"
	"time"

	"github.com/rushteam/featsweep/core"
)

// SweepK 对给定特征子集依次评估每个 k，返回按输入 k 顺序排列的结果。
//
// 单个 k 的 FitError 记录在对应 Trial 中，不影响其他 k；
// INVALID_INPUT / SHAPE_MISMATCH 直接返回。
func SweepK(ctx context.Context, ectx *core.EvalContext, label string, features []string, ks []int) (core.KSweep, error) {
	if err := core.ValidateKs(ks); err != nil {
		return nil, err
	}
	if err := checkFeatures(ectx, features); err != nil {
		return nil, err
	}

	out := make(core.KSweep, len(ks))
	err := ForEach(ctx, ectx.Config.Concurrency, len(ks), func(ctx context.Context, i int) error {
		trial, err := Evaluate(ctx, ectx, label, features, ks[i])
		if err != nil {
			return err
		}
		out[i] = trial
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SweepSubsets 对 c ∈ [minCount, maxCount]，取 ranking 前 c 个特征扫描全部 k，
// 结果以 "{c} best features" 为标签按 c 升序写入 ResultSet。
//
// 所有 (c, k) trial 共用一个 worker pool，每个 trial 写入独立槽位。
func SweepSubsets(ctx context.Context, ectx *core.EvalContext, ranking core.Ranking, minCount, maxCount int, ks []int) (*core.ResultSet, error) {
	if err := core.ValidateCountRange(minCount, maxCount); err != nil {
		return nil, err
	}
	if err := core.ValidateKs(ks); err != nil {
		return nil, err
	}
	if maxCount > len(ranking) {
		return nil, core.ErrInvalidInput(core.ModuleSweep, "max feature count %d exceeds ranked features %d", maxCount, len(ranking))
	}

	type subset struct {
		label    string
		features []string
	}
	subsets := make([]subset, 0, maxCount-minCount+1)
	for c := minCount; c <= maxCount; c++ {
		features := ranking.Top(c)
		if err := checkFeatures(ectx, features); err != nil {
			return nil, err
		}
		subsets = append(subsets, subset{label: core.SubsetLabel(c), features: features})
	}

	start := time.Now()
	slots := make([]core.KSweep, len(subsets))
	for i := range slots {
		slots[i] = make(core.KSweep, len(ks))
	}
	total := len(subsets) * len(ks)
	err := ForEach(ctx, ectx.Config.Concurrency, total, func(ctx context.Context, i int) error {
		si, ki := i/len(ks), i%len(ks)
		trial, err := Evaluate(ctx, ectx, subsets[si].label, subsets[si].features, ks[ki])
		if err != nil {
			return err
		}
		slots[si][ki] = trial
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs := core.NewResultSet()
	for i, s := range subsets {
		rs.Put(s.label, slots[i])
	}
	ectx.Log().Debug().
		Int("subsets", len(subsets)).
		Int("trials", total).
		Int("failed", len(rs.Failed())).
		Dur("elapsed", time.Since(start)).
		Msg("subset sweep done")
	return rs, nil
}
