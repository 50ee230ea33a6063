package services

import (
	"fmt"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

// Pace-trend thresholds, in seconds of lap-time delta.
const (
	paceImprovementDelta = -0.5
	tireDegradationDelta = 1.0
	lowConfidenceLevel   = 0.4
	pitProbabilityLevel  = 0.7
)

// eventAccumulator is the carried state of the extraction fold: the previous
// lap-time value and the previous pit-imminent flag.
type eventAccumulator struct {
	prevLapTime    float64
	hasPrevLapTime bool
	prevPitFlag    bool
}

// ExtractRaceEvents scans the ordered prediction log once, left to right, and
// derives discrete narrative-worthy events. Output is a pure function of
// record order and content.
func ExtractRaceEvents(records []models.PredictionRecord) []models.RaceEvent {
	events := []models.RaceEvent{}
	acc := eventAccumulator{}

	for _, rec := range records {
		switch result := rec.Result.(type) {
		case models.LapTimeResult:
			events = append(events, acc.lapTimeEvents(result)...)
		case models.PitImminentResult:
			if ev, ok := acc.pitEvent(result); ok {
				events = append(events, ev)
			}
		case models.TireCompoundResult:
			// A tire suggestion is read as an executed pit stop. This is an
			// extraction heuristic, not a ground-truth pit detector.
			events = append(events, models.RaceEvent{
				Lap:   result.Lap,
				Event: fmt.Sprintf("Pit stop executed - switched to %s tires", result.SuggestedCompound),
			})
		}
	}

	return events
}

// lapTimeEvents evaluates the three mutually exclusive pace conditions in
// priority order: improvement, degradation, then low-confidence
// inconsistency. The previous lap-time value is updated whether or not an
// event fired.
func (acc *eventAccumulator) lapTimeEvents(result models.LapTimeResult) []models.RaceEvent {
	var events []models.RaceEvent

	if acc.hasPrevLapTime {
		delta := result.PredictedLapTime - acc.prevLapTime
		switch {
		case delta < paceImprovementDelta:
			events = append(events, models.RaceEvent{
				Lap:   result.Lap,
				Event: fmt.Sprintf("Strong pace improvement, lap time dropped %.2fs", -delta),
			})
		case delta > tireDegradationDelta:
			events = append(events, models.RaceEvent{
				Lap:   result.Lap,
				Event: fmt.Sprintf("Tire degradation noticed, lap time increased %.2fs", delta),
			})
		case result.Confidence < lowConfidenceLevel:
			events = append(events, models.RaceEvent{
				Lap:   result.Lap,
				Event: "Traffic detected or incident, lap time inconsistent",
			})
		}
	}

	acc.prevLapTime = result.PredictedLapTime
	acc.hasPrevLapTime = true
	return events
}

// pitEvent fires on the rising edge of a high-probability pit flag. A false
// flag resets the edge so a later approach can fire again.
func (acc *eventAccumulator) pitEvent(result models.PitImminentResult) (models.RaceEvent, bool) {
	if result.PitImminent && !acc.prevPitFlag && result.Probability > pitProbabilityLevel {
		acc.prevPitFlag = true
		return models.RaceEvent{
			Lap:   result.Lap,
			Event: "Pit stop imminent - high tire degradation detected",
		}, true
	}
	if !result.PitImminent {
		acc.prevPitFlag = false
	}
	return models.RaceEvent{}, false
}
