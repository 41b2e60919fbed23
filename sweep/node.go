package sweep

import (
	"context"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pipeline"
)

// 子集扫描使用的排序依据
const (
	CriterionSingle  = "single"  // Report.Ranking（默认）
	CriterionAverage = "average" // Report.AverageRanking
)

// KNode 是一个 Sweep Node：对固定的特征子集扫描 Ks，结果以 Label 写入 Report.Results。
type KNode struct {
	Label    string   // 为空时使用 "k sweep"
	Features []string // 为空时使用全部候选特征
	Ks       []int    // 为空时使用 EvalConfig.KCandidates
}

func (n *KNode) Name() string        { return "sweep.k" }
func (n *KNode) Kind() pipeline.Kind { return pipeline.KindSweep }

func (n *KNode) Process(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	features := n.Features
	if len(features) == 0 {
		all, err := ectx.Table.Features(ectx.Config.Target)
		if err != nil {
			return nil, err
		}
		features = all
	}
	ks := n.Ks
	if len(ks) == 0 {
		ks = ectx.Config.KCandidates
	}
	label := n.Label
	if label == "" {
		label = "k sweep"
	}

	s, err := SweepK(ctx, ectx, label, features, ks)
	if err != nil {
		return nil, err
	}
	report.ResultsOrInit().Put(label, s)
	return report, nil
}

// SubsetNode 是一个 Sweep Node：对排序前 c 个特征（c ∈ [Min, Max]）扫描 Ks。
// 依赖前面的 rank Node 写入的排序结果。
type SubsetNode struct {
	Min       int    // 为 0 时使用 EvalConfig.MinFeatures
	Max       int    // 为 0 时使用 EvalConfig.MaxFeatures
	Ks        []int  // 为空时使用 EvalConfig.KCandidates
	Criterion string // single / average
}

func (n *SubsetNode) Name() string        { return "sweep.subsets" }
func (n *SubsetNode) Kind() pipeline.Kind { return pipeline.KindSweep }

func (n *SubsetNode) Process(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	minCount, maxCount := n.Min, n.Max
	if minCount == 0 {
		minCount = ectx.Config.MinFeatures
	}
	if maxCount == 0 {
		maxCount = ectx.Config.MaxFeatures
	}
	ks := n.Ks
	if len(ks) == 0 {
		ks = ectx.Config.KCandidates
	}

	var ranking core.Ranking
	switch n.Criterion {
	case "", CriterionSingle:
		ranking = report.Ranking
	case CriterionAverage:
		ranking = report.AverageRanking
	default:
		return nil, core.ErrInvalidInput(core.ModuleSweep, "unknown ranking criterion %q", n.Criterion)
	}
	if len(ranking) == 0 {
		return nil, core.ErrInvalidInput(core.ModuleSweep, "no %s ranking available, add a rank node first", n.criterion())
	}

	rs, err := SweepSubsets(ctx, ectx, ranking, minCount, maxCount, ks)
	if err != nil {
		return nil, err
	}
	results := report.ResultsOrInit()
	for _, l := range rs.Labels() {
		s, _ := rs.Get(l)
		results.Put(l, s)
	}
	if best, ok := rs.Best(); ok {
		ectx.Log().Info().Str("label", best.Label).Int("k", best.K).Float64("rmse", best.RMSE).Msg("best subset trial")
	}
	return report, nil
}

func (n *SubsetNode) criterion() string {
	if n.Criterion == "" {
		return CriterionSingle
	}
	return n.Criterion
}
