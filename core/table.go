package core

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Table 是引擎唯一的输入：按行存储的全数值表。
// 一列被指定为 target，其余列为候选特征。
//
// Table 构造后只读，可被多个并发 trial 共享而无需加锁。
// 缺失值填充、归一化等清洗工作由上游完成，NewTable 只拒绝 NaN / Inf。
type Table struct {
	columns     []string
	index       map[string]int
	rows        [][]float64
	fingerprint uint64
}

// NewTable 根据列名和行数据构建 Table。行数据会被复制。
func NewTable(columns []string, rows [][]float64) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrInvalidInput(ModuleTable, "no columns")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c == "" {
			return nil, ErrInvalidInput(ModuleTable, "column %d has empty name", i)
		}
		if _, dup := index[c]; dup {
			return nil, ErrInvalidInput(ModuleTable, "duplicate column %q", c)
		}
		index[c] = i
	}

	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, ErrInvalidInput(ModuleTable, "row %d has %d values, want %d", i, len(row), len(columns))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrInvalidInput(ModuleTable, "row %d column %q is not a finite number", i, columns[j])
			}
		}
		data[i] = append([]float64(nil), row...)
	}

	t := &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    data,
	}
	t.fingerprint = t.hash()
	return t, nil
}

// Len 返回行数。
func (t *Table) Len() int { return len(t.rows) }

// Columns 返回列名副本（保持原始顺序）。
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// HasColumn 判断列是否存在。
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Features 返回除 target 外的全部列，保持原始列顺序。
func (t *Table) Features(target string) ([]string, error) {
	if !t.HasColumn(target) {
		return nil, ErrInvalidInput(ModuleTable, "target column %q not found", target)
	}
	out := make([]string, 0, len(t.columns)-1)
	for _, c := range t.columns {
		if c != target {
			out = append(out, c)
		}
	}
	return out, nil
}

// Matrix 按行下标和列名取出特征矩阵（行优先）。
func (t *Table) Matrix(rows []int, cols []string) ([][]float64, error) {
	idx := make([]int, len(cols))
	for j, c := range cols {
		i, ok := t.index[c]
		if !ok {
			return nil, ErrInvalidInput(ModuleTable, "column %q not found", c)
		}
		idx[j] = i
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(t.rows) {
			return nil, ErrInvalidInput(ModuleTable, "row %d out of range", r)
		}
		vec := make([]float64, len(idx))
		for j, ci := range idx {
			vec[j] = t.rows[r][ci]
		}
		out[i] = vec
	}
	return out, nil
}

// Vector 按行下标取出单列。
func (t *Table) Vector(rows []int, col string) ([]float64, error) {
	ci, ok := t.index[col]
	if !ok {
		return nil, ErrInvalidInput(ModuleTable, "column %q not found", col)
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(t.rows) {
			return nil, ErrInvalidInput(ModuleTable, "row %d out of range", r)
		}
		out[i] = t.rows[r][ci]
	}
	return out, nil
}

// Fingerprint 返回表内容（列名 + 数值）的 xxhash，用于 trial 结果缓存的 key。
func (t *Table) Fingerprint() uint64 { return t.fingerprint }

func (t *Table) hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, c := range t.columns {
		_, _ = h.WriteString(c)
		_, _ = h.Write([]byte{0})
	}
	for _, row := range t.rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
