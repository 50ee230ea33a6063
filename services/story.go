package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

// Fallback strings returned instead of a narrative. Narrative generation is
// advisory, not load-bearing, so collaborator failure never propagates past
// this boundary.
const (
	storyUnavailableText = "Story unavailable: generation service not configured."
	storyFailedText      = "Unable to generate race story at this time."
)

// StoryGenerator formats events and stats into a fixed prompt and hands it to
// the external narrative collaborator. It performs no inference of its own.
type StoryGenerator struct {
	client *GenAIClient
}

func NewStoryGenerator(client *GenAIClient) *StoryGenerator {
	return &StoryGenerator{client: client}
}

func (g *StoryGenerator) Available() bool {
	return g.client.Available()
}

// GenerateStory returns a narrative for the session, or a fixed placeholder
// when the collaborator is unconfigured or unreachable. It never returns an
// error.
func (g *StoryGenerator) GenerateStory(ctx context.Context, sessionID string, vehicleID int, events []models.RaceEvent, stats models.SummaryStats) string {
	if !g.Available() {
		log.Printf("story generator not available, returning placeholder")
		storiesFallback.Inc()
		return storyUnavailableText
	}

	prompt := buildStoryPrompt(sessionID, vehicleID, FormatRaceEvents(events), FormatSummaryStats(stats))
	log.Printf("generating race story for session %s, vehicle %d", sessionID, vehicleID)

	story, err := g.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("race story generation failed: %v", err)
		storiesFallback.Inc()
		return storyFailedText
	}

	storiesGenerated.Inc()
	return story
}

// FormatRaceEvents renders the event list one lap per line.
func FormatRaceEvents(events []models.RaceEvent) string {
	if len(events) == 0 {
		return "No significant events recorded."
	}
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("Lap %d: %s", ev.Lap, ev.Event))
	}
	return strings.Join(lines, "\n")
}

// FormatSummaryStats renders the aggregate metrics one per line.
func FormatSummaryStats(stats models.SummaryStats) string {
	lines := []string{
		fmt.Sprintf("Total Laps: %d", stats.TotalLaps),
	}
	if math.IsInf(stats.BestLap, 1) {
		lines = append(lines, "Best Lap Time: no data")
	} else {
		lines = append(lines, fmt.Sprintf("Best Lap Time: %.3fs", stats.BestLap))
	}
	lines = append(lines,
		fmt.Sprintf("Average Lap Time: %.3fs", stats.AvgLapTime),
		fmt.Sprintf("Pit Stops: %d", stats.PitStops),
	)
	if stats.MaxSpeed > 0 {
		lines = append(lines, fmt.Sprintf("Max Speed: %.1f km/h", stats.MaxSpeed))
	}
	if stats.FinalPosition != nil {
		lines = append(lines, fmt.Sprintf("Final Position: %d", *stats.FinalPosition))
	}
	if stats.WeatherSummary != "" {
		lines = append(lines, fmt.Sprintf("Weather: %s", stats.WeatherSummary))
	}
	return strings.Join(lines, "\n")
}

func buildStoryPrompt(sessionID string, vehicleID int, eventsText, statsText string) string {
	return fmt.Sprintf(`You are a Formula 1 race analyst and journalist.

Create a post-race story for car #%d in session %s.

Key race events (lap by lap highlights):
%s

Race statistics:
%s

Write a 5-8 sentence race story describing:
- Overall pace trends and performance
- Key lap events and moments
- Pit strategy and tire performance
- Effects of track conditions and weather
- Important battles or overtakes
- Final result and overall assessment

Tone: professional, exciting, and clear. Write as if you're summarizing the race for fans.

Race Story:`, vehicleID, sessionID, eventsText, statsText)
}
