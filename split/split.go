// Package split 把表的行确定性地切分为训练集和留出测试集。
package split

import (
	"math/rand/v2"

	"github.com/rushteam/featsweep/core"
)

// Partition 是一次切分的结果：两组互不相交、合起来覆盖全部行的行下标。
// Train 和 Test 中的下标都保持置换后的顺序。
type Partition struct {
	Train []int
	Test  []int
}

// Permutation 返回 [0, n) 的伪随机置换。相同 (n, seed) 总是得到相同结果。
// 每次调用都用 seed 重新构造随机源，不依赖任何全局状态。
func Permutation(n int, seed int64) []int {
	s := uint64(seed)
	rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	return rng.Perm(n)
}

// New 对 n 行做置换后从中点切开：前 floor(n/2) 行为训练集，其余为测试集。
// n < 2 时返回 INVALID_INPUT（两侧都至少需要一行）。
func New(n int, seed int64) (*Partition, error) {
	if n < 2 {
		return nil, core.ErrInvalidInput(core.ModuleSplit, "need at least 2 rows to split, got %d", n)
	}
	perm := Permutation(n, seed)
	mid := n / 2
	return &Partition{
		Train: perm[:mid:mid],
		Test:  perm[mid:],
	}, nil
}

// Table 对整张表做切分，等价于 New(t.Len(), seed)。
func Table(t *core.Table, seed int64) (*Partition, error) {
	if t == nil {
		return nil, core.ErrInvalidInput(core.ModuleSplit, "nil table")
	}
	return New(t.Len(), seed)
}
