package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/featsweep/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("trial", cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// TrialFilter 是基于 CEL (Common Expression Language) 的 trial 过滤表达式。
// 表达式在 NewTrialFilter 时编译一次，Match 可并发调用。
//
// 可用字段：
//   - trial.label    string   结果标签，如 "3 best features"
//   - trial.k        int      近邻数
//   - trial.rmse     double   误差（失败 trial 为 0）
//   - trial.features list     特征子集
//   - trial.ok       bool     是否成功
//   - trial.error    string   失败原因（成功时为空）
//
// 示例：
//   - `trial.ok && trial.rmse < 4000.0`
//   - `trial.k <= 9 && "engine-size" in trial.features`
//   - `!trial.ok` → 只看失败的 trial
type TrialFilter struct {
	expr string
	prg  cel.Program
}

// NewTrialFilter 编译表达式；表达式必须返回 bool。
func NewTrialFilter(expr string) (*TrialFilter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.ErrInvalidInput(core.ModuleConfig, "compile %q: %v", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, core.ErrInvalidInput(core.ModuleConfig, "expression %q must return bool, got %v", expr, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &TrialFilter{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式。
func (f *TrialFilter) Expr() string { return f.expr }

// Match 对单个 trial 求值。
func (f *TrialFilter) Match(t core.Trial) (bool, error) {
	out, _, err := f.prg.Eval(map[string]interface{}{"trial": buildInput(t)})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(t core.Trial) map[string]interface{} {
	errMsg := ""
	if t.Err != nil {
		errMsg = t.Err.Error()
	}
	features := t.Features
	if features == nil {
		features = []string{}
	}
	return map[string]interface{}{
		"label":    t.Label,
		"k":        int64(t.K),
		"rmse":     t.RMSE,
		"features": features,
		"ok":       t.OK(),
		"error":    errMsg,
	}
}
