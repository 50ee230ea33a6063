package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	explainUnavailableText = "Explanation unavailable: generation service not configured."
	explainFailedText      = "Unable to generate explanation at this time."
)

// Explanation task identifiers, matching the prompt each one selects.
const (
	ExplainLapTime = "lap_time"
	ExplainPit     = "pit_detection"
	ExplainTire    = "tire_suggestion"
)

// Explainer produces short natural-language explanations for individual
// predictions. Like the story generator it degrades to fixed placeholder text
// and never returns an error.
type Explainer struct {
	client *GenAIClient
}

func NewExplainer(client *GenAIClient) *Explainer {
	return &Explainer{client: client}
}

func (e *Explainer) Available() bool {
	return e.client.Available()
}

// ExplainPrediction generates an explanation for a prediction given the raw
// (unscaled) feature values in canonical order.
func (e *Explainer) ExplainPrediction(ctx context.Context, featureNames []string, featureValues []float64, prediction any, task string) string {
	if !e.Available() {
		return explainUnavailableText
	}

	lines := make([]string, 0, len(featureNames))
	for i, name := range featureNames {
		if i >= len(featureValues) {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s: %.2f", name, featureValues[i]))
	}

	prompt := buildExplainPrompt(strings.Join(lines, "\n"), prediction, task)
	text, err := e.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("explanation generation failed: %v", err)
		return explainFailedText
	}
	return text
}

func buildExplainPrompt(featuresText string, prediction any, task string) string {
	switch task {
	case ExplainLapTime:
		return fmt.Sprintf(`You are an expert Formula 1 race engineer.

Telemetry Input:
%s

Predicted Lap Time: %.3f seconds

Explain *why* the model predicted this value.
Focus on the top logical factors.
Keep it short (2-3 sentences).`, featuresText, prediction)

	case ExplainPit:
		return fmt.Sprintf(`You are a Formula 1 pit strategy analyst.

Telemetry Input:
%s

Pit Prediction: %v

Explain the most important factors that contributed to this prediction.
Keep it short (2-3 sentences).`, featuresText, prediction)

	case ExplainTire:
		return fmt.Sprintf(`You are a Formula 1 tire strategy expert.

Telemetry Input:
%s

Suggested Tire Compound: %v

Explain why this compound suits the current conditions.
Keep it short (2-3 sentences).`, featuresText, prediction)

	default:
		return fmt.Sprintf(`You are a Formula 1 data analyst.

Telemetry Input:
%s

Prediction: %v

Explain the key factors behind this prediction in 2-3 sentences.`, featuresText, prediction)
	}
}
