package models

type PredictionType string

const (
	PredictionLapTime      PredictionType = "lap_time"
	PredictionPitImminent  PredictionType = "pit_imminent"
	PredictionTireCompound PredictionType = "tire_compound"
	PredictionAll          PredictionType = "all"
)

// PredictionResult is the closed set of task result shapes stored in the
// session log. Consumers (event extraction, summary aggregation) type-switch
// on the concrete variant instead of probing loosely typed maps.
type PredictionResult interface {
	PredictionType() PredictionType
}

type LapTimeResult struct {
	SessionID        string  `json:"session_id"`
	VehicleID        int     `json:"vehicle_id"`
	Lap              int     `json:"lap"`
	PredictedLapTime float64 `json:"predicted_lap_time"`
	Confidence       float64 `json:"confidence"`
	Explanation      string  `json:"explanation,omitempty"`
}

func (LapTimeResult) PredictionType() PredictionType { return PredictionLapTime }

type PitImminentResult struct {
	SessionID   string  `json:"session_id"`
	VehicleID   int     `json:"vehicle_id"`
	Lap         int     `json:"lap"`
	PitImminent bool    `json:"pit_imminent"`
	Probability float64 `json:"probability"`
	Explanation string  `json:"explanation,omitempty"`
}

func (PitImminentResult) PredictionType() PredictionType { return PredictionPitImminent }

type TireCompoundResult struct {
	SessionID         string  `json:"session_id"`
	VehicleID         int     `json:"vehicle_id"`
	Lap               int     `json:"lap"`
	SuggestedCompound string  `json:"suggested_compound"`
	Confidence        float64 `json:"confidence"`
	Explanation       string  `json:"explanation,omitempty"`
}

func (TireCompoundResult) PredictionType() PredictionType { return PredictionTireCompound }

type AllPredictionsResult struct {
	SessionID         string  `json:"session_id"`
	VehicleID         int     `json:"vehicle_id"`
	Lap               int     `json:"lap"`
	LapTime           float64 `json:"lap_time"`
	LapTimeConfidence float64 `json:"lap_time_confidence"`
	PitImminent       bool    `json:"pit_imminent"`
	PitProbability    float64 `json:"pit_probability"`
	TireCompound      string  `json:"tire_compound"`
	TireConfidence    float64 `json:"tire_confidence"`
}

func (AllPredictionsResult) PredictionType() PredictionType { return PredictionAll }
