package filter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rushteam/featsweep/core"
)

func sampleReport() *core.Report {
	r := core.NewReport()
	r.Results.Put("2 best features", core.KSweep{
		{Label: "2 best features", Features: []string{"A", "B"}, K: 1, RMSE: 3.5},
		{Label: "2 best features", Features: []string{"A", "B"}, K: 3, RMSE: 2.1},
		{Label: "2 best features", Features: []string{"A", "B"}, K: 30, Err: errors.New("k too large")},
	})
	r.Results.Put("3 best features", core.KSweep{
		{Label: "3 best features", Features: []string{"A", "B", "C"}, K: 1, RMSE: 9.0},
	})
	return r
}

func TestFilterNode_DropFailed(t *testing.T) {
	n := &FilterNode{Filters: []Filter{FailedFilter{}}}
	out, err := n.Process(context.Background(), &core.EvalContext{}, sampleReport())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	s, _ := out.Results.Get("2 best features")
	if !reflect.DeepEqual(s.Ks(), []int{1, 3}) {
		t.Errorf("ks = %v, want [1 3]", s.Ks())
	}
	if out.Results.Len() != 2 {
		t.Errorf("labels = %v", out.Results.Labels())
	}
}

func TestFilterNode_ExprKeepsEmptyLabels(t *testing.T) {
	f, err := NewExprFilter(`trial.ok && trial.rmse < 5.0`)
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	n := &FilterNode{Filters: []Filter{f}}
	out, err := n.Process(context.Background(), &core.EvalContext{}, sampleReport())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"2 best features", "3 best features"}
	if !reflect.DeepEqual(out.Results.Labels(), want) {
		t.Errorf("labels = %v, want %v", out.Results.Labels(), want)
	}
	s, _ := out.Results.Get("3 best features")
	if len(s) != 0 {
		t.Errorf("3 best features = %v, want empty", s)
	}
	s, _ = out.Results.Get("2 best features")
	if !reflect.DeepEqual(s.Ks(), []int{1, 3}) {
		t.Errorf("ks = %v, want [1 3]", s.Ks())
	}
}

func TestFilterNode_NoFilters(t *testing.T) {
	in := sampleReport()
	out, err := (&FilterNode{}).Process(context.Background(), &core.EvalContext{}, in)
	if err != nil || out != in {
		t.Errorf("Process() = %v, %v; want input report", out, err)
	}
}

type errFilter struct{}

func (errFilter) Name() string { return "err" }
func (errFilter) ShouldFilter(context.Context, *core.EvalContext, core.Trial) (bool, error) {
	return false, errors.New("broken")
}

func TestFilterNode_Error(t *testing.T) {
	n := &FilterNode{Filters: []Filter{errFilter{}}}
	if _, err := n.Process(context.Background(), &core.EvalContext{}, sampleReport()); err == nil {
		t.Errorf("Process() error = nil")
	}
}

func TestTopNNode(t *testing.T) {
	out, err := (&TopNNode{N: 1}).Process(context.Background(), &core.EvalContext{}, sampleReport())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	s, _ := out.Results.Get("2 best features")
	if len(s) != 1 || s[0].K != 3 {
		t.Errorf("2 best features = %+v, want only k=3", s)
	}
	s, _ = out.Results.Get("3 best features")
	if len(s) != 1 {
		t.Errorf("3 best features = %+v", s)
	}

	in := sampleReport()
	if out, _ := (&TopNNode{}).Process(context.Background(), &core.EvalContext{}, in); out != in {
		t.Errorf("N=0 should return the input report")
	}
}
