package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Two-tree regressor: each tree splits on feature 0 at 5.0.
func regressorForest() Forest {
	return Forest{
		Trees: []decisionTree{
			{Nodes: []treeNode{
				{Feature: 0, Threshold: 5.0, Left: 1, Right: 2},
				{Left: -1, Value: []float64{80.0}},
				{Left: -1, Value: []float64{90.0}},
			}},
			{Nodes: []treeNode{
				{Feature: 0, Threshold: 5.0, Left: 1, Right: 2},
				{Left: -1, Value: []float64{82.0}},
				{Left: -1, Value: []float64{88.0}},
			}},
		},
		Importances: []float64{1.0, 0.0},
	}
}

// Two-tree two-class classifier splitting on feature 1 at 0.5.
func classifierForest() Forest {
	return Forest{
		Trees: []decisionTree{
			{Nodes: []treeNode{
				{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
				{Left: -1, Value: []float64{8, 2}},
				{Left: -1, Value: []float64{1, 9}},
			}},
			{Nodes: []treeNode{
				{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
				{Left: -1, Value: []float64{6, 4}},
				{Left: -1, Value: []float64{0, 10}},
			}},
		},
		Classes: []string{"0", "1"},
	}
}

func TestForestPredict(t *testing.T) {
	f := regressorForest()

	got := f.Predict([]float64{3.0, 0.0})
	if !almostEqual(got, 81.0) {
		t.Errorf("Predict(left branch) = %v, want 81", got)
	}

	got = f.Predict([]float64{7.0, 0.0})
	if !almostEqual(got, 89.0) {
		t.Errorf("Predict(right branch) = %v, want 89", got)
	}

	// Split condition is <=, so the threshold itself descends left.
	got = f.Predict([]float64{5.0, 0.0})
	if !almostEqual(got, 81.0) {
		t.Errorf("Predict(at threshold) = %v, want 81", got)
	}
}

func TestForestPredictProba(t *testing.T) {
	f := classifierForest()

	probs := f.PredictProba([]float64{0.0, 0.2})
	if len(probs) != 2 {
		t.Fatalf("probs length = %d, want 2", len(probs))
	}
	// Averaged normalized leaf counts: (0.8 + 0.6)/2 = 0.7 for class 0.
	if !almostEqual(probs[0], 0.7) {
		t.Errorf("probs[0] = %v, want 0.7", probs[0])
	}
	if !almostEqual(probs[0]+probs[1], 1.0) {
		t.Errorf("probabilities sum to %v, want 1", probs[0]+probs[1])
	}
}

func TestForestPredictClass(t *testing.T) {
	f := classifierForest()

	if got := f.PredictClass([]float64{0.0, 0.2}); got != "0" {
		t.Errorf("PredictClass(left) = %q, want \"0\"", got)
	}
	if got := f.PredictClass([]float64{0.0, 0.9}); got != "1" {
		t.Errorf("PredictClass(right) = %q, want \"1\"", got)
	}
}

func TestForestFeatureImportances(t *testing.T) {
	f := regressorForest()
	imp := f.FeatureImportances()
	if len(imp) != 2 || imp[0] != 1.0 {
		t.Errorf("FeatureImportances = %v, want [1 0]", imp)
	}
}

func writeForest(t *testing.T, f Forest) string {
	t.Helper()
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadForestRegressor(t *testing.T) {
	path := writeForest(t, regressorForest())
	m, err := LoadForestRegressor(path)
	if err != nil {
		t.Fatalf("LoadForestRegressor failed: %v", err)
	}
	if got := m.Predict([]float64{3.0, 0.0}); !almostEqual(got, 81.0) {
		t.Errorf("Predict = %v, want 81", got)
	}
}

func TestLoadForestClassifier(t *testing.T) {
	path := writeForest(t, classifierForest())
	m, err := LoadForestClassifier(path)
	if err != nil {
		t.Fatalf("LoadForestClassifier failed: %v", err)
	}
	if got := m.Predict([]float64{0.0, 0.9}); got != "1" {
		t.Errorf("Predict = %q, want \"1\"", got)
	}
	probs := m.PredictProba([]float64{0.0, 0.9})
	if len(probs) != 2 {
		t.Errorf("probs length = %d, want 2", len(probs))
	}
}

func TestLoadForestErrors(t *testing.T) {
	if _, err := LoadForestRegressor(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := writeForest(t, Forest{Trees: []decisionTree{}})
	if _, err := LoadForestRegressor(empty); err == nil {
		t.Error("expected error for forest with no trees")
	}

	// A forest without class labels cannot serve as a classifier.
	noClasses := writeForest(t, regressorForest())
	if _, err := LoadForestClassifier(noClasses); err == nil {
		t.Error("expected error for classifier artifact without classes")
	}
}
