package core

import "github.com/rs/zerolog"

var nopLogger = zerolog.Nop()

// EvalContext 承载一次评估所需的全部依赖，贯穿整个 Pipeline 透传。
// 它取代了脚本中的模块级全局变量：表、配置、回归器都以参数形式传入各阶段。
type EvalContext struct {
	// Table 是已清洗的全数值输入表（只读）
	Table *Table

	// Config 是种子、k 候选、特征数量范围、target 列等配置
	Config EvalConfig

	// Regressor 是外部提供的近邻回归能力
	Regressor Regressor

	// Cache 是可选的 trial 结果缓存（store.MemoryStore / store.RedisStore）
	Cache Store

	// Logger 为空时不输出日志
	Logger *zerolog.Logger
}

// Log 返回可用的 logger。
func (ectx *EvalContext) Log() *zerolog.Logger {
	if ectx == nil || ectx.Logger == nil {
		return &nopLogger
	}
	return ectx.Logger
}

// Validate 校验上下文是否完整可用。
func (ectx *EvalContext) Validate() error {
	if ectx == nil {
		return ErrInvalidInput(ModulePipeline, "nil eval context")
	}
	if ectx.Table == nil {
		return ErrInvalidInput(ModulePipeline, "table is required")
	}
	if ectx.Regressor == nil {
		return ErrInvalidInput(ModulePipeline, "regressor is required")
	}
	if err := ectx.Config.Validate(); err != nil {
		return err
	}
	if !ectx.Table.HasColumn(ectx.Config.Target) {
		return ErrInvalidInput(ModulePipeline, "target column %q not found", ectx.Config.Target)
	}
	return nil
}
