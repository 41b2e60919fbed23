package rank

import (
	"context"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pipeline"
)

// SingleNode 是一个 Rank Node：用单个 k 评估每个特征，写入 Report.Ranking。
// 这是选取 "best features" 的规范排序。
type SingleNode struct {
	// K 为 0 时使用 EvalConfig.DefaultK
	K int
}

func (n *SingleNode) Name() string        { return "rank.single" }
func (n *SingleNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SingleNode) Process(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	ranking, err := SingleFeature(ctx, ectx, n.K)
	if err != nil {
		return nil, err
	}
	report.Ranking = ranking
	ectx.Log().Info().Strs("order", ranking.Features()).Msg("single-feature ranking")
	return report, nil
}

// AverageNode 是一个 Rank Node：对每个特征扫描 Ks 并取平均 RMSE，
// 写入 Report.AverageRanking 和 Report.FeatureSweeps。
type AverageNode struct {
	// Ks 为空时使用 EvalConfig.KCandidates
	Ks []int
}

func (n *AverageNode) Name() string        { return "rank.average" }
func (n *AverageNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *AverageNode) Process(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	ranking, details, err := Average(ctx, ectx, n.Ks)
	if err != nil {
		return nil, err
	}
	report.AverageRanking = ranking
	report.FeatureSweeps = details
	ectx.Log().Info().Strs("order", ranking.Features()).Msg("k-averaged ranking")
	return report, nil
}
