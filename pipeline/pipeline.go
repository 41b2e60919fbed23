package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/featsweep/core"
)

// Pipeline 把评估流程拆成可组合的 Node 链：rank → 选 top-c 子集 → 逐子集扫描 k → report。
// 流程是严格的无环序列，不会回到前面的阶段。
type Pipeline struct {
	Name  string
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	ectx *core.EvalContext,
	report *core.Report,
) (*core.Report, error) {
	if err := ectx.Validate(); err != nil {
		return nil, err
	}
	if report == nil {
		report = core.NewReport()
	}

	log := ectx.Log()
	cur := report
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, ectx, cur)
		if err != nil {
			log.Error().Err(err).Str("pipeline", p.Name).Str("node", node.Name()).Msg("node failed")
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		log.Debug().
			Str("pipeline", p.Name).
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Dur("elapsed", time.Since(start)).
			Msg("node done")
		if next != nil {
			cur = next
		}
	}
	return cur, nil
}
