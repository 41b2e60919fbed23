package filter

import (
	"cmp"
	"context"
	"slices"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pipeline"
)

// TopNNode 是一个 Top-N 截断节点：每个标签只保留 RMSE 最小的 N 个成功 trial。
// 通常放在扫描节点之后，用于压缩深扫（如 k=1..24）的报告。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.SingleNode{},
//	        &sweep.SubsetNode{Ks: core.KRange(1, 24)},
//	        &filter.TopNNode{N: 3},
//	    },
//	}
type TopNNode struct {
	// N <= 0 时不截断；失败的 trial 总是被移除
	N int
}

func (n *TopNNode) Name() string {
	return "report.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	if n.N <= 0 || report.Results.Len() == 0 {
		return report, nil
	}

	out := core.NewResultSet()
	for _, label := range report.Results.Labels() {
		s, _ := report.Results.Get(label)
		kept := make(core.KSweep, 0, len(s))
		for _, t := range s {
			if t.OK() {
				kept = append(kept, t)
			}
		}
		// 相同 RMSE 保持原有 k 顺序
		slices.SortStableFunc(kept, func(a, b core.Trial) int {
			return cmp.Compare(a.RMSE, b.RMSE)
		})
		if len(kept) > n.N {
			kept = kept[:n.N]
		}
		out.Put(label, kept)
	}
	report.Results = out
	return report, nil
}
