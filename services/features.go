package services

import (
	"encoding/json"
	"math"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

// AssembleFeatures converts a raw telemetry payload into the ordered numeric
// feature vector. It iterates the canonical required-field list, not the
// input's own keys: extra input fields are ignored and output order is the
// canonical order. Pure transformation, no side effects.
func AssembleFeatures(raw map[string]any, required []string) ([]float64, error) {
	out := make([]float64, 0, len(required))
	for _, field := range required {
		val, ok := raw[field]
		if !ok {
			return nil, &models.ValidationError{Field: field, Reason: "is missing"}
		}
		f, ok := toFloat(val)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &models.ValidationError{Field: field, Reason: "contains invalid value"}
		}
		out = append(out, f)
	}
	return out, nil
}

// ExtractMeta pulls the session identifiers out of a raw telemetry payload.
// Missing pieces default to zero values; the session id is validated
// separately against the store.
func ExtractMeta(raw map[string]any) models.TelemetryMeta {
	meta := models.TelemetryMeta{}
	if v, ok := raw["session_id"].(string); ok {
		meta.SessionID = v
	}
	if v, ok := toFloat(raw["vehicle_id"]); ok {
		meta.VehicleID = int(v)
	}
	if v, ok := toFloat(raw["lap"]); ok {
		meta.Lap = int(v)
	}
	return meta
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
