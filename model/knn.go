package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rushteam/featsweep/core"
)

// KNNRegressor 是暴力搜索的 k 近邻回归器：
// 预测值为欧氏距离最近的 k 个训练样本 target 的算术平均（uniform 权重）。
//
// 距离相同时优先选择训练集中靠前的样本，保证同样输入总是得到同样预测。
type KNNRegressor struct {
	// Workers 是预测时的并发数，<= 0 使用 GOMAXPROCS
	Workers int
}

// NewKNNRegressor 创建 KNN 回归器。
func NewKNNRegressor() *KNNRegressor {
	return &KNNRegressor{}
}

func (r *KNNRegressor) Name() string { return "knn" }

// Fit 与惰性 KNN 一样只保存训练数据；k 超过训练行数时返回 FIT_ERROR。
func (r *KNNRegressor) Fit(X [][]float64, y []float64, k int) (core.Predictor, error) {
	width, err := checkMatrix(X)
	if err != nil {
		return nil, err
	}
	if len(X) != len(y) {
		return nil, core.ErrFit(core.ModuleModel, "%d feature rows but %d targets", len(X), len(y))
	}
	if k <= 0 {
		return nil, core.ErrFit(core.ModuleModel, "k must be positive, got %d", k)
	}
	if k > len(X) {
		return nil, core.ErrFit(core.ModuleModel, "expected k <= training rows, got k=%d rows=%d", k, len(X))
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &knnModel{k: k, width: width, X: X, y: y, workers: workers}, nil
}

type knnModel struct {
	k       int
	width   int
	X       [][]float64
	y       []float64
	workers int
}

// Predict 按行分块并发预测，每块写入 out 的独立区间。
func (m *knnModel) Predict(X [][]float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, nil
	}
	for i, row := range X {
		if len(row) != m.width {
			return nil, core.ErrFit(core.ModuleModel, "row %d has %d features, model was fit with %d", i, len(row), m.width)
		}
	}

	out := make([]float64, len(X))
	workers := min(m.workers, len(X))
	rowsPerWorker := (len(X) + workers - 1) / workers

	var eg errgroup.Group
	for start := 0; start < len(X); start += rowsPerWorker {
		s, e := start, min(start+rowsPerWorker, len(X))
		eg.Go(func() error {
			nbrs := make([]neighbor, 0, m.k)
			vals := make([]float64, m.k)
			for i := s; i < e; i++ {
				out[i] = m.predictOne(X[i], nbrs[:0], vals)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type neighbor struct {
	d   float64
	idx int
}

// predictOne 维护一个按距离升序的有界切片。
// 只有严格更近的样本才会插队，所以距离相同时保留下标更小的样本。
func (m *knnModel) predictOne(xi []float64, nbrs []neighbor, vals []float64) float64 {
	for j, xj := range m.X {
		d := floats.Distance(xi, xj, 2)
		if len(nbrs) == m.k && d >= nbrs[len(nbrs)-1].d {
			continue
		}
		pos := len(nbrs)
		for pos > 0 && nbrs[pos-1].d > d {
			pos--
		}
		if len(nbrs) < m.k {
			nbrs = append(nbrs, neighbor{})
		}
		copy(nbrs[pos+1:], nbrs[pos:len(nbrs)-1])
		nbrs[pos] = neighbor{d: d, idx: j}
	}
	for i, n := range nbrs {
		vals[i] = m.y[n.idx]
	}
	return stat.Mean(vals[:len(nbrs)], nil)
}
