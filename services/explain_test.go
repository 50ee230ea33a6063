package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/config"
)

func TestExplainPredictionUnavailable(t *testing.T) {
	e := NewExplainer(NewGenAIClient(config.GeminiConfig{}))
	got := e.ExplainPrediction(context.Background(), []string{"max_speed"}, []float64{340}, 82.5, ExplainLapTime)
	if got != explainUnavailableText {
		t.Errorf("explanation = %q, want %q", got, explainUnavailableText)
	}
}

func TestExplainPredictionFailure(t *testing.T) {
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	e := NewExplainer(geminiClient(srv, 0))
	got := e.ExplainPrediction(context.Background(), []string{"max_speed"}, []float64{340}, 82.5, ExplainLapTime)
	if got != explainFailedText {
		t.Errorf("explanation = %q, want %q", got, explainFailedText)
	}
}

func TestExplainPrediction(t *testing.T) {
	var prompt string
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}
		json.NewEncoder(w).Encode(geminiReply("High speed kept the lap quick."))
	})
	e := NewExplainer(geminiClient(srv, 0))

	got := e.ExplainPrediction(context.Background(),
		[]string{"max_speed", "avg_throttle"}, []float64{340.5, 0.75}, 82.5, ExplainLapTime)
	if got != "High speed kept the lap quick." {
		t.Errorf("explanation = %q", got)
	}
	for _, want := range []string{
		"- max_speed: 340.50",
		"- avg_throttle: 0.75",
		"Predicted Lap Time: 82.500 seconds",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildExplainPromptPerTask(t *testing.T) {
	tests := []struct {
		task       string
		prediction any
		want       string
	}{
		{ExplainLapTime, 82.5, "race engineer"},
		{ExplainPit, true, "Pit Prediction: true"},
		{ExplainTire, "MEDIUM", "Suggested Tire Compound: MEDIUM"},
		{"unknown_task", 1.0, "Prediction: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.task, func(t *testing.T) {
			prompt := buildExplainPrompt("- lap: 10.00", tt.prediction, tt.task)
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("prompt for %s missing %q:\n%s", tt.task, tt.want, prompt)
			}
		})
	}
}

func TestExplainPredictionValueNameMismatch(t *testing.T) {
	// Fewer values than names must not panic; extra names are skipped.
	var prompt string
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}
		json.NewEncoder(w).Encode(geminiReply("ok"))
	})
	e := NewExplainer(geminiClient(srv, 0))

	e.ExplainPrediction(context.Background(), []string{"a", "b", "c"}, []float64{1.0}, 82.5, ExplainLapTime)
	if strings.Contains(prompt, "- b:") || strings.Contains(prompt, "- c:") {
		t.Errorf("prompt contains lines for missing values:\n%s", prompt)
	}
}
