package core

import "encoding/json"

// Trial 是一次 (特征子集, k) 评估及其结果。创建后不再修改。
// Err 非空表示该 trial 失败（FitError），此时 RMSE 无意义。
type Trial struct {
	Label    string
	Features []string
	K        int
	RMSE     float64
	Err      error
}

// OK 表示 trial 是否得到了数值 RMSE。
func (t Trial) OK() bool { return t.Err == nil }

func (t Trial) MarshalJSON() ([]byte, error) {
	out := struct {
		Label    string   `json:"label"`
		Features []string `json:"features"`
		K        int      `json:"k"`
		RMSE     *float64 `json:"rmse,omitempty"`
		Error    string   `json:"error,omitempty"`
	}{Label: t.Label, Features: t.Features, K: t.K}
	if t.Err != nil {
		out.Error = t.Err.Error()
	} else {
		rmse := t.RMSE
		out.RMSE = &rmse
	}
	return json.Marshal(out)
}

// KSweep 是同一特征子集下按输入 k 顺序排列的 trial 列表（k → RMSE 映射）。
type KSweep []Trial

// Ks 返回 k 列表（保持输入顺序）。
func (s KSweep) Ks() []int {
	out := make([]int, len(s))
	for i, t := range s {
		out[i] = t.K
	}
	return out
}

// Get 按 k 取 trial。
func (s KSweep) Get(k int) (Trial, bool) {
	for _, t := range s {
		if t.K == k {
			return t, true
		}
	}
	return Trial{}, false
}

// RMSEs 返回成功 trial 的 k → RMSE 映射；失败的 trial 不出现在映射中。
func (s KSweep) RMSEs() map[int]float64 {
	out := make(map[int]float64, len(s))
	for _, t := range s {
		if t.OK() {
			out[t.K] = t.RMSE
		}
	}
	return out
}

// Failed 返回失败的 trial。
func (s KSweep) Failed() []Trial {
	var out []Trial
	for _, t := range s {
		if !t.OK() {
			out = append(out, t)
		}
	}
	return out
}

// Best 返回 RMSE 最小的成功 trial；相同 RMSE 保留靠前的 k。
func (s KSweep) Best() (Trial, bool) {
	best, found := Trial{}, false
	for _, t := range s {
		if t.OK() && (!found || t.RMSE < best.RMSE) {
			best, found = t, true
		}
	}
	return best, found
}

// ResultSet 是按标签聚合的 sweep 结果，标签保持插入顺序。
type ResultSet struct {
	labels []string
	sweeps map[string]KSweep
}

func NewResultSet() *ResultSet {
	return &ResultSet{sweeps: make(map[string]KSweep)}
}

// Put 写入一个标签的结果；重复写入同一标签会覆盖但不改变顺序。
func (r *ResultSet) Put(label string, s KSweep) {
	if r.sweeps == nil {
		r.sweeps = make(map[string]KSweep)
	}
	if _, ok := r.sweeps[label]; !ok {
		r.labels = append(r.labels, label)
	}
	r.sweeps[label] = s
}

// Get 按标签取结果。
func (r *ResultSet) Get(label string) (KSweep, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.sweeps[label]
	return s, ok
}

// Labels 返回全部标签（插入顺序）。
func (r *ResultSet) Labels() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.labels...)
}

func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.labels)
}

// Trials 按标签顺序展开全部 trial。
func (r *ResultSet) Trials() []Trial {
	if r == nil {
		return nil
	}
	var out []Trial
	for _, l := range r.labels {
		out = append(out, r.sweeps[l]...)
	}
	return out
}

// Failed 返回全部失败 trial，每个都带有所属标签。
func (r *ResultSet) Failed() []Trial {
	var out []Trial
	for _, t := range r.Trials() {
		if !t.OK() {
			out = append(out, t)
		}
	}
	return out
}

// Best 返回全部结果中 RMSE 最小的成功 trial。
func (r *ResultSet) Best() (Trial, bool) {
	return KSweep(r.Trials()).Best()
}

func (r *ResultSet) MarshalJSON() ([]byte, error) {
	type entry struct {
		Label  string  `json:"label"`
		Trials []Trial `json:"trials"`
	}
	out := make([]entry, 0, r.Len())
	for _, l := range r.Labels() {
		out = append(out, entry{Label: l, Trials: r.sweeps[l]})
	}
	return json.Marshal(out)
}

// FeatureScore 是 Ranking 中的一项：特征名和它的误差。
// 单 k 排序时 RMSE 就是该 k 的误差；k 平均排序时是各 k 误差的均值。
type FeatureScore struct {
	Feature string
	RMSE    float64
	Err     error
}

func (f FeatureScore) OK() bool { return f.Err == nil }

func (f FeatureScore) MarshalJSON() ([]byte, error) {
	out := struct {
		Feature string   `json:"feature"`
		RMSE    *float64 `json:"rmse,omitempty"`
		Error   string   `json:"error,omitempty"`
	}{Feature: f.Feature}
	if f.Err != nil {
		out.Error = f.Err.Error()
	} else {
		rmse := f.RMSE
		out.RMSE = &rmse
	}
	return json.Marshal(out)
}

// Ranking 按误差升序排列的特征列表，失败的特征排在最后。
type Ranking []FeatureScore

// Features 返回排序后的特征名。
func (r Ranking) Features() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Feature
	}
	return out
}

// Top 返回前 n 个特征名；n 超过长度时返回全部。
func (r Ranking) Top(n int) []string {
	if n > len(r) {
		n = len(r)
	}
	if n < 0 {
		n = 0
	}
	return r[:n].Features()
}

// Report 是在 Pipeline 各 Node 之间透传的结果载体，最终交给外部报表 / 绘图方。
type Report struct {
	// Ranking 是单 k（默认近邻数）下的单特征排序，选取 top-c 特征的规范依据
	Ranking Ranking `json:"ranking,omitempty"`

	// AverageRanking 是各 k 误差取平均后的单特征排序（聚合视图）
	AverageRanking Ranking `json:"average_ranking,omitempty"`

	// FeatureSweeps 是 AverageRanking 的明细：以特征名为标签的 k 扫描结果
	FeatureSweeps *ResultSet `json:"feature_sweeps,omitempty"`

	// Results 是以 "{c} best features" 等为标签的扫描结果
	Results *ResultSet `json:"results,omitempty"`
}

// NewReport 创建空 Report。
func NewReport() *Report {
	return &Report{Results: NewResultSet()}
}

// ResultsOrInit 返回 Results，为空时先初始化。
func (r *Report) ResultsOrInit() *ResultSet {
	if r.Results == nil {
		r.Results = NewResultSet()
	}
	return r.Results
}
