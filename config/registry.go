// Package config 维护 Node 类型注册表，把 pipeline 配置中的 type 字符串映射到构建器。
//
// 内置 Node 在 config/builders 的 init 中注册，入口处需要：
//
//	import _ "github.com/rushteam/featsweep/config/builders"
package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/pipeline"
)

// NodeBuilder 即 pipeline.NodeBuilder。
type NodeBuilder = pipeline.NodeBuilder

type registry struct {
	mu       sync.RWMutex
	builders map[string]NodeBuilder
}

var nodes = &registry{builders: make(map[string]NodeBuilder)}

func (r *registry) lookup(typeName string) (NodeBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[typeName]
	return b, ok
}

// Register 登记一种 Node 类型；同名类型后注册的覆盖先注册的，空名或 nil 构建器被忽略。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	nodes.mu.Lock()
	defer nodes.mu.Unlock()
	nodes.builders[typeName] = builder
}

// SupportedTypes 返回已登记的 Node 类型（字典序）。
func SupportedTypes() []string {
	nodes.mu.RLock()
	defer nodes.mu.RUnlock()
	types := make([]string, 0, len(nodes.builders))
	for t := range nodes.builders {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// DefaultFactory 返回包含全部已登记类型的 NodeFactory 快照。
func DefaultFactory() *pipeline.NodeFactory {
	nodes.mu.RLock()
	defer nodes.mu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range nodes.builders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 在构建之前检查整份配置：eval 段必须合法，
// 每个 node 的 type 必须已登记。所有 node 问题一次性返回，错误码为 INVALID_INPUT。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	if err := cfg.Pipeline.Eval.Validate(); err != nil {
		return err
	}
	var errs []error
	for i, nc := range cfg.Pipeline.Nodes {
		switch _, ok := nodes.lookup(nc.Type); {
		case nc.Type == "":
			errs = append(errs, fmt.Errorf("nodes[%d]: type is empty", i))
		case !ok:
			errs = append(errs, fmt.Errorf("nodes[%d]: unsupported type %q", i, nc.Type))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &core.DomainError{
		Module:  core.ModuleConfig,
		Code:    core.ErrorCodeInvalidInput,
		Message: fmt.Sprintf("config: invalid pipeline %q (supported node types: %v)", cfg.Pipeline.Name, SupportedTypes()),
		Err:     errors.Join(errs...),
	}
}
