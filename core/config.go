package core

import "fmt"

// DefaultKCandidates 是第一轮粗扫使用的 k 列表。
var DefaultKCandidates = []int{1, 3, 5, 7, 9}

const (
	DefaultSeed        int64 = 1
	DefaultNeighbors         = 5 // 回归器的默认近邻数，单特征排序使用
	DefaultMinFeatures       = 2
	DefaultMaxFeatures       = 6
)

// EvalConfig 是评估引擎的全部配置：种子、k 候选、特征数量范围、target 列。
// 种子是进程级只读配置，每个 trial 都会用它重新构造切分。
type EvalConfig struct {
	Target      string `yaml:"target" json:"target"`
	Seed        int64  `yaml:"seed" json:"seed"`
	DefaultK    int    `yaml:"default_k" json:"default_k"`
	KCandidates []int  `yaml:"k_candidates" json:"k_candidates"`
	MinFeatures int    `yaml:"min_features" json:"min_features"`
	MaxFeatures int    `yaml:"max_features" json:"max_features"`

	// Concurrency 是 trial 并发数：0 / 1 顺序执行，<0 使用 GOMAXPROCS
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// DefaultEvalConfig 返回默认配置（target 需调用方指定）。
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		Seed:        DefaultSeed,
		DefaultK:    DefaultNeighbors,
		KCandidates: append([]int(nil), DefaultKCandidates...),
		MinFeatures: DefaultMinFeatures,
		MaxFeatures: DefaultMaxFeatures,
	}
}

// Validate 校验配置。
func (c EvalConfig) Validate() error {
	if c.Target == "" {
		return ErrInvalidInput(ModuleConfig, "target column is required")
	}
	if c.DefaultK <= 0 {
		return ErrInvalidInput(ModuleConfig, "default_k must be positive, got %d", c.DefaultK)
	}
	if err := ValidateKs(c.KCandidates); err != nil {
		return err
	}
	return ValidateCountRange(c.MinFeatures, c.MaxFeatures)
}

// ValidateKs 校验 k 候选列表：非空、全为正数、无重复。
func ValidateKs(ks []int) error {
	if len(ks) == 0 {
		return ErrInvalidInput(ModuleConfig, "k candidates are empty")
	}
	seen := make(map[int]struct{}, len(ks))
	for _, k := range ks {
		if k <= 0 {
			return ErrInvalidInput(ModuleConfig, "k must be positive, got %d", k)
		}
		if _, dup := seen[k]; dup {
			return ErrInvalidInput(ModuleConfig, "duplicate k %d", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// ValidateCountRange 校验特征数量闭区间 [min, max]。
func ValidateCountRange(minCount, maxCount int) error {
	if minCount < 1 {
		return ErrInvalidInput(ModuleConfig, "min feature count must be >= 1, got %d", minCount)
	}
	if minCount > maxCount {
		return ErrInvalidInput(ModuleConfig, "min feature count %d > max %d", minCount, maxCount)
	}
	return nil
}

// KRange 返回闭区间 [from, to] 的 k 列表，例如深扫 KRange(1, 24)。
func KRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for k := from; k <= to; k++ {
		out = append(out, k)
	}
	return out
}

// SubsetLabel 返回 "前 c 个最佳特征" 的结果标签。
func SubsetLabel(c int) string {
	return fmt.Sprintf("%d best features", c)
}
