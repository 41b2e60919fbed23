package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 接口缓存 trial 结果。
//
// 示例：
//   var cache core.Store = NewMemoryStore()
//   ectx := &core.EvalContext{Cache: cache, ...}
