package filter

import (
	"context"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pkg/dsl"
)

// Filter 是过滤器的抽象接口，用于判断一个 Trial 是否应该从报告中移除。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 trial 是否应该被过滤
	ShouldFilter(ctx context.Context, ectx *core.EvalContext, trial core.Trial) (bool, error)
}

// ExprFilter 保留满足 CEL 表达式的 trial，其余过滤掉。
type ExprFilter struct {
	filter *dsl.TrialFilter
}

// NewExprFilter 编译保留表达式，例如 `trial.ok && trial.k <= 9`。
func NewExprFilter(expr string) (*ExprFilter, error) {
	f, err := dsl.NewTrialFilter(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{filter: f}, nil
}

func (f *ExprFilter) Name() string { return "expr:" + f.filter.Expr() }

func (f *ExprFilter) ShouldFilter(_ context.Context, _ *core.EvalContext, trial core.Trial) (bool, error) {
	keep, err := f.filter.Match(trial)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

// FailedFilter 过滤掉失败的 trial。
type FailedFilter struct{}

func (FailedFilter) Name() string { return "failed" }

func (FailedFilter) ShouldFilter(_ context.Context, _ *core.EvalContext, trial core.Trial) (bool, error) {
	return !trial.OK(), nil
}
