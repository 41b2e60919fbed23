package pipeline

import (
	"context"

	"github.com/rushteam/featsweep/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRank   Kind = "rank"   // 排序阶段：单特征评估并按误差排序
	KindSweep  Kind = "sweep"  // 扫描阶段：k 超参扫描 / 特征子集扫描
	KindFilter Kind = "filter" // 过滤阶段：按表达式筛选 trial
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 report -> 输出 report”的形态：排序节点写 Ranking，扫描节点读 Ranking 写 Results。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		ectx *core.EvalContext,
		report *core.Report,
	) (*core.Report, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(map[string]interface{}) (Node, error)
