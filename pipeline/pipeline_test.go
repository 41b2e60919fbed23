package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/model"
	"github.com/rushteam/featsweep/pipeline"
	"github.com/rushteam/featsweep/rank"
	"github.com/rushteam/featsweep/sweep"
)

func scenarioContext(t *testing.T) *core.EvalContext {
	t.Helper()
	rows := make([][]float64, 20)
	for i := range rows {
		a := float64(i)
		b := float64((i * 7) % 20)
		c := math.Cos(float64(i))
		d := float64(i % 3)
		rows[i] = []float64{a, b, c, d, 4*a + b + d}
	}
	tbl, err := core.NewTable([]string{"A", "B", "C", "D", "T"}, rows)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	cfg := core.DefaultEvalConfig()
	cfg.Target = "T"
	cfg.Seed = 1
	return &core.EvalContext{Table: tbl, Config: cfg, Regressor: model.NewKNNRegressor()}
}

// 4 个特征、20 行、seed=1：排序覆盖全部特征，子集扫描 [2,3] 只产生两个标签
func TestPipeline_EndToEnd(t *testing.T) {
	ectx := scenarioContext(t)
	ks := []int{1, 3, 5, 7, 9}
	p := &pipeline.Pipeline{
		Name: "scenario",
		Nodes: []pipeline.Node{
			&rank.SingleNode{},
			&sweep.SubsetNode{Min: 2, Max: 3, Ks: ks},
		},
	}

	report, err := p.Run(context.Background(), ectx, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Ranking) != 4 {
		t.Fatalf("ranking has %d entries, want 4", len(report.Ranking))
	}
	names := report.Ranking.Features()
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"A", "B", "C", "D"}) {
		t.Errorf("ranking features = %v", names)
	}

	wantLabels := []string{"2 best features", "3 best features"}
	if !reflect.DeepEqual(report.Results.Labels(), wantLabels) {
		t.Fatalf("labels = %v, want %v", report.Results.Labels(), wantLabels)
	}
	for _, label := range wantLabels {
		s, _ := report.Results.Get(label)
		rmses := s.RMSEs()
		for _, k := range ks {
			v, ok := rmses[k]
			if !ok {
				t.Errorf("%s: missing k=%d", label, k)
				continue
			}
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s k=%d: rmse = %v", label, k, v)
			}
		}
	}

	if _, err := json.Marshal(report); err != nil {
		t.Errorf("json.Marshal(report) error = %v", err)
	}
}

func TestPipeline_AverageCriterion(t *testing.T) {
	ectx := scenarioContext(t)
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&rank.AverageNode{},
		&sweep.SubsetNode{Min: 2, Max: 2, Criterion: sweep.CriterionAverage},
	}}
	report, err := p.Run(context.Background(), ectx, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	s, ok := report.Results.Get("2 best features")
	if !ok {
		t.Fatalf("missing 2 best features")
	}
	if !reflect.DeepEqual(s[0].Features, report.AverageRanking.Top(2)) {
		t.Errorf("features = %v, want %v", s[0].Features, report.AverageRanking.Top(2))
	}
	if report.FeatureSweeps.Len() != 4 {
		t.Errorf("feature sweeps = %d, want 4", report.FeatureSweeps.Len())
	}
}

func TestPipeline_SubsetWithoutRanking(t *testing.T) {
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{&sweep.SubsetNode{Min: 2, Max: 3}}}
	_, err := p.Run(context.Background(), scenarioContext(t), nil)
	if !core.IsInvalidInput(err) {
		t.Errorf("Run() error = %v, want INVALID_INPUT", err)
	}
}

func TestPipeline_ValidatesContext(t *testing.T) {
	p := &pipeline.Pipeline{}
	ectx := scenarioContext(t)
	ectx.Config.Target = ""
	if _, err := p.Run(context.Background(), ectx, nil); !core.IsInvalidInput(err) {
		t.Errorf("empty target: error = %v, want INVALID_INPUT", err)
	}
	ectx = scenarioContext(t)
	ectx.Regressor = nil
	if _, err := p.Run(context.Background(), ectx, nil); !core.IsInvalidInput(err) {
		t.Errorf("nil regressor: error = %v, want INVALID_INPUT", err)
	}
}

type failingNode struct{ err error }

func (n failingNode) Name() string        { return "test.fail" }
func (n failingNode) Kind() pipeline.Kind { return pipeline.KindFilter }
func (n failingNode) Process(context.Context, *core.EvalContext, *core.Report) (*core.Report, error) {
	return nil, n.err
}

func TestPipeline_WrapsNodeError(t *testing.T) {
	boom := errors.New("boom")
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{failingNode{err: boom}}}
	_, err := p.Run(context.Background(), scenarioContext(t), nil)
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
}

func TestParseYAML_Defaults(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: cars
  eval:
    target: price
    k_candidates: [1, 2, 3]
  nodes:
    - type: rank.single
`))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	ev := cfg.Pipeline.Eval
	if ev.Target != "price" || ev.Seed != core.DefaultSeed || ev.DefaultK != core.DefaultNeighbors {
		t.Errorf("eval = %+v", ev)
	}
	if !reflect.DeepEqual(ev.KCandidates, []int{1, 2, 3}) {
		t.Errorf("k_candidates = %v", ev.KCandidates)
	}
	if ev.MinFeatures != core.DefaultMinFeatures || ev.MaxFeatures != core.DefaultMaxFeatures {
		t.Errorf("feature range = %d..%d", ev.MinFeatures, ev.MaxFeatures)
	}
	if len(cfg.Pipeline.Nodes) != 1 || cfg.Pipeline.Nodes[0].Type != "rank.single" {
		t.Errorf("nodes = %+v", cfg.Pipeline.Nodes)
	}
}

func TestParseJSON(t *testing.T) {
	cfg, err := pipeline.ParseJSON([]byte(`{"pipeline":{"name":"j","eval":{"target":"t","seed":7},"nodes":[{"type":"sweep.k","config":{"ks":[1,2]}}]}}`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if cfg.Pipeline.Eval.Seed != 7 || cfg.Pipeline.Eval.Target != "t" {
		t.Errorf("eval = %+v", cfg.Pipeline.Eval)
	}
	if _, err := pipeline.ParseJSON([]byte(`{`)); err == nil {
		t.Errorf("ParseJSON(invalid) error = nil")
	}
}

func TestNodeFactory(t *testing.T) {
	f := pipeline.NewNodeFactory()
	f.Register("rank.single", func(map[string]interface{}) (pipeline.Node, error) {
		return &rank.SingleNode{}, nil
	})
	cfg, _ := pipeline.ParseYAML([]byte(`
pipeline:
  nodes:
    - type: rank.single
`))
	p, err := cfg.BuildPipeline(f)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0].Name() != "rank.single" {
		t.Errorf("nodes = %v", p.Nodes)
	}
	if _, err := f.Build("unknown", nil); err == nil {
		t.Errorf("Build(unknown) error = nil")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "pipeline.JSON")
	if err := os.WriteFile(jsonPath, []byte(`{"pipeline":{"name":"j","eval":{"target":"t"},"nodes":[{"type":"rank.single"}]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "pipeline.yaml")
	if err := os.WriteFile(yamlPath, []byte("pipeline:\n  name: y\n  eval:\n    target: t\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := pipeline.LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json) error = %v", err)
	}
	if cfg.Pipeline.Name != "j" || len(cfg.Pipeline.Nodes) != 1 || cfg.Pipeline.Eval.Seed != core.DefaultSeed {
		t.Errorf("json config = %+v", cfg.Pipeline)
	}
	cfg, err = pipeline.LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml) error = %v", err)
	}
	if cfg.Pipeline.Name != "y" {
		t.Errorf("yaml name = %q", cfg.Pipeline.Name)
	}
	if _, err := pipeline.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("LoadFile(missing) error = nil")
	}
}
