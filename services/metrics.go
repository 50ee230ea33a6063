package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplens_predictions_total",
		Help: "Total number of predictions served, by task.",
	}, []string{"task"})
	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplens_prediction_failures_total",
		Help: "Total number of failed prediction attempts, by task.",
	}, []string{"task"})
	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "laplens_inference_duration_seconds",
		Help:    "Duration of a single model inference call.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
	storiesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplens_stories_generated_total",
		Help: "Total number of race stories produced by the narrative generator.",
	})
	storiesFallback = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplens_stories_fallback_total",
		Help: "Total number of race story requests answered with the fallback text.",
	})
)
