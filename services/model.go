package services

import (
	"encoding/json"
	"fmt"
	"os"
)

// Regressor and Classifier are the black-box model capabilities the
// orchestrator depends on. Any backend implementing them can be substituted
// without touching the inference code.
type Regressor interface {
	Predict(x []float64) float64
}

type Classifier interface {
	Predict(x []float64) string
	PredictProba(x []float64) []float64
}

// ImportanceReporter is the optional feature-importance capability probed by
// the confidence heuristic.
type ImportanceReporter interface {
	FeatureImportances() []float64
}

// treeNode follows the sklearn export convention: x[Feature] <= Threshold
// descends Left, otherwise Right. Leaves have Left == -1 and carry either a
// single regression value or a class distribution.
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

func (t *decisionTree) leaf(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Left != -1 {
		node := t.Nodes[i]
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
	return t.Nodes[i].Value
}

// Forest is a random-forest ensemble loaded from a JSON artifact. A forest
// with Classes acts as a classifier, otherwise as a regressor. Read-only
// after load; safe for concurrent use.
type Forest struct {
	Trees       []decisionTree `json:"trees"`
	Classes     []string       `json:"classes,omitempty"`
	Importances []float64      `json:"feature_importances,omitempty"`
}

func (f *Forest) Predict(x []float64) float64 {
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].leaf(x)[0]
	}
	return sum / float64(len(f.Trees))
}

func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, len(f.Classes))
	for i := range f.Trees {
		leaf := f.Trees[i].leaf(x)
		total := 0.0
		for _, v := range leaf {
			total += v
		}
		if total == 0 {
			continue
		}
		for j, v := range leaf {
			probs[j] += v / total
		}
	}
	for j := range probs {
		probs[j] /= float64(len(f.Trees))
	}
	return probs
}

// PredictClass returns the label with the highest averaged probability.
func (f *Forest) PredictClass(x []float64) string {
	probs := f.PredictProba(x)
	best := 0
	for j := 1; j < len(probs); j++ {
		if probs[j] > probs[best] {
			best = j
		}
	}
	return f.Classes[best]
}

func (f *Forest) FeatureImportances() []float64 { return f.Importances }

// forestClassifier adapts a class-bearing Forest to the Classifier interface.
type forestClassifier struct {
	*Forest
}

func (c forestClassifier) Predict(x []float64) string { return c.PredictClass(x) }

// LoadForestRegressor loads a regression forest artifact.
func LoadForestRegressor(path string) (Regressor, error) {
	f, err := loadForest(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LoadForestClassifier loads a classification forest artifact.
func LoadForestClassifier(path string) (Classifier, error) {
	f, err := loadForest(path)
	if err != nil {
		return nil, err
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("model: %s has no class labels", path)
	}
	return forestClassifier{f}, nil
}

func loadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("model: %s contains no trees", path)
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("model: %s tree %d is empty", path, ti)
		}
	}
	return &f, nil
}
