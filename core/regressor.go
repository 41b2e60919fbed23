package core

// Regressor 是距离类回归器的领域接口（例如 KNN）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（model）实现
//   - Sweep 逻辑只依赖此接口，替换近邻搜索实现无需改动 sweep / rank
//
// 实现：
//   - model.KNNRegressor 实现此接口（暴力搜索，欧氏距离）
//   - 其他近邻实现（KD-Tree、ANN 服务等）也可以实现此接口
type Regressor interface {
	// Name 返回回归器名称（用于日志 / 缓存 key）
	Name() string

	// Fit 使用特征矩阵 X（行优先）和目标 y 训练，k 为近邻数。
	// 无法支持该配置时（如 k 超过训练行数）返回 FIT_ERROR。
	Fit(X [][]float64, y []float64, k int) (Predictor, error)
}

// Predictor 是 Fit 之后得到的模型。
type Predictor interface {
	// Predict 对每一行特征输出一个预测值，长度与 X 一致。
	Predict(X [][]float64) ([]float64, error)
}
