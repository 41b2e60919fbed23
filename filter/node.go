package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pipeline"
)

// FilterNode 是过滤 Node，可以组合多个过滤器筛选 Report.Results 中的 trial。
// 如果任何一个过滤器返回 true，该 trial 就会被移除；标签本身保留（可能为空）。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "report.filter"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	if len(n.Filters) == 0 || report.Results.Len() == 0 {
		return report, nil
	}

	out := core.NewResultSet()
	filteredCount := 0
	for _, label := range report.Results.Labels() {
		s, _ := report.Results.Get(label)
		kept := make(core.KSweep, 0, len(s))
		for _, trial := range s {
			drop, err := n.shouldFilter(ctx, ectx, trial)
			if err != nil {
				return nil, err
			}
			if drop {
				filteredCount++
				continue
			}
			kept = append(kept, trial)
		}
		out.Put(label, kept)
	}

	ectx.Log().Debug().Int("filtered", filteredCount).Msg("report filtered")
	report.Results = out
	return report, nil
}

func (n *FilterNode) shouldFilter(ctx context.Context, ectx *core.EvalContext, trial core.Trial) (bool, error) {
	for _, f := range n.Filters {
		drop, err := f.ShouldFilter(ctx, ectx, trial)
		if err != nil {
			return false, fmt.Errorf("filter %s on %q k=%d: %w", f.Name(), trial.Label, trial.K, err)
		}
		if drop {
			return true, nil
		}
	}
	return false, nil
}
