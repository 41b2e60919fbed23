package builders

import (
	"fmt"

	"github.com/rushteam/featsweep/config"
	"github.com/rushteam/featsweep/filter"
	"github.com/rushteam/featsweep/pipeline"
	"github.com/rushteam/featsweep/pkg/conv"
	"github.com/rushteam/featsweep/rank"
	"github.com/rushteam/featsweep/sweep"
)

func init() {
	config.Register("rank.single", BuildSingleRankNode)
	config.Register("rank.average", BuildAverageRankNode)
	config.Register("sweep.k", BuildKSweepNode)
	config.Register("sweep.subsets", BuildSubsetSweepNode)
	config.Register("report.filter", BuildFilterNode)
	config.Register("report.topn", BuildTopNNode)
}

func getKs(cfg map[string]interface{}) ([]int, error) {
	ks, ok := conv.ConfigGetIntSlice(cfg, "ks")
	if !ok {
		return nil, fmt.Errorf("ks must be a list of integers")
	}
	return ks, nil
}

func BuildSingleRankNode(cfg map[string]interface{}) (pipeline.Node, error) {
	k := conv.ConfigGetInt(cfg, "k", 0)
	if k < 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	return &rank.SingleNode{K: k}, nil
}

func BuildAverageRankNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ks, err := getKs(cfg)
	if err != nil {
		return nil, err
	}
	return &rank.AverageNode{Ks: ks}, nil
}

func BuildKSweepNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ks, err := getKs(cfg)
	if err != nil {
		return nil, err
	}
	features, ok := conv.ConfigGetStringSlice(cfg, "features")
	if !ok {
		return nil, fmt.Errorf("features must be a list of column names")
	}
	return &sweep.KNode{
		Label:    conv.ConfigGet(cfg, "label", ""),
		Features: features,
		Ks:       ks,
	}, nil
}

func BuildSubsetSweepNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ks, err := getKs(cfg)
	if err != nil {
		return nil, err
	}
	criterion := conv.ConfigGet(cfg, "ranking", sweep.CriterionSingle)
	switch criterion {
	case sweep.CriterionSingle, sweep.CriterionAverage:
	default:
		return nil, fmt.Errorf("unknown ranking %q (supported: single, average)", criterion)
	}
	return &sweep.SubsetNode{
		Min:       conv.ConfigGetInt(cfg, "min", 0),
		Max:       conv.ConfigGetInt(cfg, "max", 0),
		Ks:        ks,
		Criterion: criterion,
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	var filters []filter.Filter
	if conv.ConfigGet(cfg, "drop_failed", false) {
		filters = append(filters, filter.FailedFilter{})
	}
	if expr := conv.ConfigGet(cfg, "expr", ""); expr != "" {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if len(filters) == 0 {
		return nil, fmt.Errorf("report.filter needs expr or drop_failed")
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("report.topn needs n > 0, got %d", n)
	}
	return &filter.TopNNode{N: n}, nil
}
