// Package featsweep 是一个基于 KNN 回归的特征选择与超参数扫描评估引擎。
//
// 设计要点：
// - Pipeline-first: 评估流程通过 Node 串联（Rank → Sweep → Filter）
// - 确定性: 每个 trial 都用同一个种子重新切分，结果与执行顺序、并发度无关
// - 失败隔离: 单个 (特征子集, k) trial 的 FitError 只记录在该 trial 上，不中断扫描
package featsweep

import "github.com/rushteam/featsweep/pipeline"

// 轻量 facade：便于用户直接 import "featsweep" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRank   = pipeline.KindRank
	KindSweep  = pipeline.KindSweep
	KindFilter = pipeline.KindFilter
)
