package models

import "time"

const (
	SessionActive = "active"
	SessionClosed = "closed"
)

// Session is one vehicle's race run: identity, lifecycle status, and the
// ordered prediction log. All state is process-lifetime only.
type Session struct {
	SessionID   string             `json:"session_id"`
	VehicleID   int                `json:"vehicle_id"`
	RaceName    string             `json:"race_name"`
	CreatedAt   time.Time          `json:"created_at"`
	Status      string             `json:"status"`
	Predictions []PredictionRecord `json:"predictions,omitempty"`
}

// PredictionRecord is one logged inference result. Records are append-only
// and ordered by insertion, which mirrors request arrival order; callers may
// submit laps out of order and the log is not reordered or deduplicated.
type PredictionRecord struct {
	Type      PredictionType   `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Result    PredictionResult `json:"result"`
}
