package services

import (
	"log"
	"math"
	"path/filepath"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

const defaultConfidence = 0.75

// Artifact file names inside the models directory.
const (
	lapTimeModelFile      = "lap_time_model.json"
	pitImminentModelFile  = "pit_imminent_model.json"
	tireCompoundModelFile = "tire_compound_model.json"
	scalerFile            = "scaler.json"
)

// InferenceEngine bundles the three pre-trained predictors and the shared
// scaler. Loaded once at startup, read-only afterwards; safe for concurrent
// use by any number of requests.
type InferenceEngine struct {
	lapTimeModel Regressor
	pitModel     Classifier
	tireModel    Classifier
	scaler       *Scaler
	features     []string
}

// NewInferenceEngine loads model artifacts from dir. A missing artifact is
// logged and left nil rather than failing startup: each task then reports
// ModelUnavailable at call time, keeping the rest of the service usable.
func NewInferenceEngine(dir string) *InferenceEngine {
	eng := &InferenceEngine{features: models.FeatureColumns}

	if m, err := LoadForestRegressor(filepath.Join(dir, lapTimeModelFile)); err != nil {
		log.Printf("lap time model unavailable: %v", err)
	} else {
		eng.lapTimeModel = m
		log.Printf("loaded lap time model")
	}

	if m, err := LoadForestClassifier(filepath.Join(dir, pitImminentModelFile)); err != nil {
		log.Printf("pit imminent model unavailable: %v", err)
	} else {
		eng.pitModel = m
		log.Printf("loaded pit imminent model")
	}

	if m, err := LoadForestClassifier(filepath.Join(dir, tireCompoundModelFile)); err != nil {
		log.Printf("tire compound model unavailable: %v", err)
	} else {
		eng.tireModel = m
		log.Printf("loaded tire compound model")
	}

	if s, err := LoadScaler(filepath.Join(dir, scalerFile)); err != nil {
		log.Printf("scaler unavailable, serving unscaled features: %v", err)
	} else {
		eng.scaler = s
		log.Printf("loaded scaler (%d features)", len(s.Mean))
	}

	return eng
}

// NewInferenceEngineWith assembles an engine from explicit components. Used
// by tests and by any caller substituting model backends.
func NewInferenceEngineWith(lapTime Regressor, pit, tire Classifier, scaler *Scaler, features []string) *InferenceEngine {
	if features == nil {
		features = models.FeatureColumns
	}
	return &InferenceEngine{
		lapTimeModel: lapTime,
		pitModel:     pit,
		tireModel:    tire,
		scaler:       scaler,
		features:     features,
	}
}

// Ready reports whether all three models are loaded.
func (e *InferenceEngine) Ready() bool {
	return e.lapTimeModel != nil && e.pitModel != nil && e.tireModel != nil
}

func (e *InferenceEngine) FeatureColumns() []string { return e.features }

// PreprocessInput validates and assembles the raw payload into a scaled
// feature vector. When no scaler artifact is available the unscaled vector is
// passed through with a warning, trading strict correctness for availability.
func (e *InferenceEngine) PreprocessInput(raw map[string]any) ([]float64, models.TelemetryMeta, error) {
	x, err := AssembleFeatures(raw, e.features)
	if err != nil {
		return nil, models.TelemetryMeta{}, err
	}
	meta := ExtractMeta(raw)

	scaled, err := e.ScaleFeatures(x)
	if err != nil {
		return nil, models.TelemetryMeta{}, err
	}
	return scaled, meta, nil
}

// ScaleFeatures standardizes an assembled vector, passing it through unscaled
// when no scaler is loaded.
func (e *InferenceEngine) ScaleFeatures(x []float64) ([]float64, error) {
	if e.scaler == nil {
		log.Printf("scaler not available, using unscaled features")
		return x, nil
	}
	return e.scaler.Transform(x)
}

// PredictLapTime returns the predicted lap time in seconds and a heuristic
// confidence in [0,1]. The confidence is derived from the regressor's
// feature-importance signal, not a statistical confidence interval.
func (e *InferenceEngine) PredictLapTime(x []float64) (float64, float64, error) {
	if e.lapTimeModel == nil {
		predictionsFailed.WithLabelValues(string(models.PredictionLapTime)).Inc()
		return 0, 0, &models.ModelUnavailableError{Model: "lap_time"}
	}

	start := time.Now()
	value := e.lapTimeModel.Predict(x)
	inferenceDuration.Observe(time.Since(start).Seconds())

	confidence := estimateConfidence(e.lapTimeModel)
	predictionsServed.WithLabelValues(string(models.PredictionLapTime)).Inc()
	log.Printf("lap time prediction: %.2fs, confidence: %.2f", value, confidence)
	return value, confidence, nil
}

// PredictPitImminent returns the pit flag and the maximum class probability,
// i.e. confidence in whichever class was chosen.
func (e *InferenceEngine) PredictPitImminent(x []float64) (bool, float64, error) {
	if e.pitModel == nil {
		predictionsFailed.WithLabelValues(string(models.PredictionPitImminent)).Inc()
		return false, 0, &models.ModelUnavailableError{Model: "pit_imminent"}
	}

	start := time.Now()
	label := e.pitModel.Predict(x)
	probability := maxProba(e.pitModel.PredictProba(x))
	inferenceDuration.Observe(time.Since(start).Seconds())

	imminent := label == "1"
	predictionsServed.WithLabelValues(string(models.PredictionPitImminent)).Inc()
	log.Printf("pit imminent prediction: %v, probability: %.2f", imminent, probability)
	return imminent, probability, nil
}

// PredictTireCompound returns the suggested compound label and the maximum
// class probability.
func (e *InferenceEngine) PredictTireCompound(x []float64) (string, float64, error) {
	if e.tireModel == nil {
		predictionsFailed.WithLabelValues(string(models.PredictionTireCompound)).Inc()
		return "", 0, &models.ModelUnavailableError{Model: "tire_compound"}
	}

	start := time.Now()
	label := e.tireModel.Predict(x)
	confidence := maxProba(e.tireModel.PredictProba(x))
	inferenceDuration.Observe(time.Since(start).Seconds())

	predictionsServed.WithLabelValues(string(models.PredictionTireCompound)).Inc()
	log.Printf("tire compound prediction: %s, confidence: %.2f", label, confidence)
	return label, confidence, nil
}

// PredictAll runs all three tasks over the same vector. Deliberately
// all-or-nothing: any missing model fails the whole call, unlike the per-task
// operations which degrade independently.
func (e *InferenceEngine) PredictAll(x []float64) (*models.AllPredictionsResult, error) {
	if !e.Ready() {
		predictionsFailed.WithLabelValues(string(models.PredictionAll)).Inc()
		return nil, &models.ModelUnavailableError{Model: "bundle"}
	}

	lapTime, lapConfidence, err := e.PredictLapTime(x)
	if err != nil {
		return nil, err
	}
	pitImminent, pitProbability, err := e.PredictPitImminent(x)
	if err != nil {
		return nil, err
	}
	tireCompound, tireConfidence, err := e.PredictTireCompound(x)
	if err != nil {
		return nil, err
	}

	predictionsServed.WithLabelValues(string(models.PredictionAll)).Inc()
	return &models.AllPredictionsResult{
		LapTime:           lapTime,
		LapTimeConfidence: lapConfidence,
		PitImminent:       pitImminent,
		PitProbability:    pitProbability,
		TireCompound:      tireCompound,
		TireConfidence:    tireConfidence,
	}, nil
}

// estimateConfidence derives a heuristic confidence from the model's
// feature-importance signal when exposed: 0.5 + 0.5*max_importance, capped at
// 1.0. Models without importances get a fixed default.
func estimateConfidence(model any) float64 {
	ir, ok := model.(ImportanceReporter)
	if !ok {
		return defaultConfidence
	}
	importances := ir.FeatureImportances()
	if len(importances) == 0 {
		return defaultConfidence
	}
	maxImportance := importances[0]
	for _, v := range importances[1:] {
		maxImportance = math.Max(maxImportance, v)
	}
	return math.Min(0.5+0.5*maxImportance, 1.0)
}

func maxProba(probs []float64) float64 {
	best := 0.0
	for _, p := range probs {
		if p > best {
			best = p
		}
	}
	return best
}
