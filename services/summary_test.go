package services

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

func TestCalculateSummaryStats(t *testing.T) {
	records := []models.PredictionRecord{
		lapTimeRecord(5, 81.0, 0.9),
		lapTimeRecord(12, 79.5, 0.9),
		lapTimeRecord(20, 80.2, 0.9),
		tireRecord(12, "MEDIUM"),
	}

	stats := CalculateSummaryStats(records, nil)
	if stats.TotalLaps != 20 {
		t.Errorf("TotalLaps = %d, want 20 (highest lap index, not record count)", stats.TotalLaps)
	}
	if !almostEqual(stats.BestLap, 79.5) {
		t.Errorf("BestLap = %v, want 79.5", stats.BestLap)
	}
	if !almostEqual(stats.AvgLapTime, 80.233) {
		t.Errorf("AvgLapTime = %v, want 80.233", stats.AvgLapTime)
	}
	if stats.PitStops != 1 {
		t.Errorf("PitStops = %d, want 1", stats.PitStops)
	}
	if stats.WeatherSummary != "Clear skies" {
		t.Errorf("WeatherSummary = %q, want default", stats.WeatherSummary)
	}
}

func TestCalculateSummaryStatsNoLapTimes(t *testing.T) {
	records := []models.PredictionRecord{
		pitRecord(3, true, 0.9),
		tireRecord(4, "SOFT"),
	}

	stats := CalculateSummaryStats(records, nil)
	if !math.IsInf(stats.BestLap, 1) {
		t.Errorf("BestLap = %v, want +Inf sentinel with no lap-time records", stats.BestLap)
	}
	if stats.AvgLapTime != 0 {
		t.Errorf("AvgLapTime = %v, want 0", stats.AvgLapTime)
	}
	if stats.TotalLaps != 0 {
		t.Errorf("TotalLaps = %d, want 0", stats.TotalLaps)
	}
	if stats.PitStops != 1 {
		t.Errorf("PitStops = %d, want 1", stats.PitStops)
	}
}

func TestCalculateSummaryStatsEmptyLog(t *testing.T) {
	stats := CalculateSummaryStats(nil, nil)
	if !math.IsInf(stats.BestLap, 1) {
		t.Errorf("BestLap = %v, want +Inf", stats.BestLap)
	}
}

func TestCalculateSummaryStatsWeather(t *testing.T) {
	weather := &models.WeatherData{
		AirTemp:   25,
		TrackTemp: 45,
		Humidity:  60,
		WindSpeed: 5,
		Rain:      false,
	}
	stats := CalculateSummaryStats(nil, weather)
	want := "Clear skies, track temp 45°C, air temp 25°C, 60% humidity, wind 5 km/h"
	if stats.WeatherSummary != want {
		t.Errorf("WeatherSummary = %q, want %q", stats.WeatherSummary, want)
	}

	weather.Rain = true
	stats = CalculateSummaryStats(nil, weather)
	if !strings.HasPrefix(stats.WeatherSummary, "Rainy skies") {
		t.Errorf("WeatherSummary = %q, want Rainy prefix", stats.WeatherSummary)
	}
}

// The +Inf sentinel is internal; at the JSON boundary best_lap becomes null.
func TestSummaryStatsMarshalInfBestLap(t *testing.T) {
	stats := CalculateSummaryStats(nil, nil)
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["best_lap"]; !ok || v != nil {
		t.Errorf("best_lap = %v, want null", v)
	}
}

func TestSummaryStatsMarshalFiniteBestLap(t *testing.T) {
	stats := CalculateSummaryStats([]models.PredictionRecord{
		lapTimeRecord(1, 79.5, 0.9),
	}, nil)
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, _ := decoded["best_lap"].(float64); !almostEqual(v, 79.5) {
		t.Errorf("best_lap = %v, want 79.5", decoded["best_lap"])
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{80.23333333, 80.233},
		{79.9995, 80.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round3(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
