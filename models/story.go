package models

import (
	"encoding/json"
	"math"
)

// RaceEvent is a discrete, human-readable occurrence derived from trends
// across consecutive predictions.
type RaceEvent struct {
	Lap   int    `json:"lap"`
	Event string `json:"event"`
}

// SummaryStats are aggregate race metrics reduced from the prediction log.
// BestLap is +Inf until the first lap-time record arrives; callers must treat
// +Inf as "no data".
type SummaryStats struct {
	TotalLaps      int     `json:"total_laps"`
	BestLap        float64 `json:"best_lap"`
	AvgLapTime     float64 `json:"avg_lap_time"`
	PitStops       int     `json:"pit_stops"`
	MaxSpeed       float64 `json:"max_speed"`
	FinalPosition  *int    `json:"final_position"`
	WeatherSummary string  `json:"weather_summary"`
}

// MarshalJSON emits best_lap as null when it is still the +Inf sentinel,
// since JSON has no representation for infinity.
func (s SummaryStats) MarshalJSON() ([]byte, error) {
	type alias SummaryStats
	out := struct {
		alias
		BestLap *float64 `json:"best_lap"`
	}{alias: alias(s)}
	if !math.IsInf(s.BestLap, 1) {
		out.BestLap = &s.BestLap
	}
	return json.Marshal(out)
}
