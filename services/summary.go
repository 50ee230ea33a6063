package services

import (
	"fmt"
	"math"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

const defaultWeatherSummary = "Clear skies"

// CalculateSummaryStats reduces the prediction log to scalar race metrics in
// a single pass. BestLap stays +Inf when no lap-time record exists; TotalLaps
// is the highest lap index among lap-time predictions, not a record count.
func CalculateSummaryStats(records []models.PredictionRecord, weather *models.WeatherData) models.SummaryStats {
	stats := models.SummaryStats{
		BestLap:        math.Inf(1),
		WeatherSummary: defaultWeatherSummary,
	}

	lapCount := 0
	lapSum := 0.0

	for _, rec := range records {
		switch result := rec.Result.(type) {
		case models.LapTimeResult:
			lapCount++
			lapSum += result.PredictedLapTime
			stats.BestLap = math.Min(stats.BestLap, result.PredictedLapTime)
			if result.Lap > stats.TotalLaps {
				stats.TotalLaps = result.Lap
			}
		case models.TireCompoundResult:
			// Tire-compound suggestions proxy for pit stops.
			stats.PitStops++
		}
	}

	if lapCount > 0 {
		stats.AvgLapTime = round3(lapSum / float64(lapCount))
		stats.BestLap = round3(stats.BestLap)
	}

	if weather != nil {
		stats.WeatherSummary = formatWeather(weather)
	}

	return stats
}

func formatWeather(w *models.WeatherData) string {
	sky := "Clear"
	if w.Rain {
		sky = "Rainy"
	}
	return fmt.Sprintf("%s skies, track temp %g°C, air temp %g°C, %g%% humidity, wind %g km/h",
		sky, w.TrackTemp, w.AirTemp, w.Humidity, w.WindSpeed)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
