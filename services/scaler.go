package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Scaler is a fitted per-feature standardization: (x - mean) / scale applied
// positionally in the exact feature order it was fitted with. Read-only at
// serving time.
type Scaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// FitScaler computes per-feature mean and standard deviation over training
// samples. Features with zero spread scale by 1 so constant columns pass
// through centered.
func FitScaler(samples [][]float64, featureNames []string) (*Scaler, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("scaler: no samples to fit")
	}
	n := len(featureNames)
	for i, row := range samples {
		if len(row) != n {
			return nil, fmt.Errorf("scaler: sample %d has %d features, want %d", i, len(row), n)
		}
	}

	mean := make([]float64, n)
	for _, row := range samples {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(samples))
	}

	scale := make([]float64, n)
	for _, row := range samples {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / float64(len(samples)))
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	return &Scaler{FeatureNames: featureNames, Mean: mean, Scale: scale}, nil
}

// Transform standardizes a feature vector. The vector must match the fitted
// feature count; values line up positionally with the fitted order.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: vector has %d features, fitted with %d", len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		sc := s.Scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (v - s.Mean[i]) / sc
	}
	return out, nil
}

// LoadScaler reads a fitted scaler artifact from disk.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scaler: read %s: %w", path, err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scaler: parse %s: %w", path, err)
	}
	if len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler: %s has %d means but %d scales", path, len(s.Mean), len(s.Scale))
	}
	return &s, nil
}
