package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	store     services.SessionStore
	engine    *services.InferenceEngine
	explainer *services.Explainer
	cache     *services.CacheService
}

func NewPredictionHandler(store services.SessionStore, engine *services.InferenceEngine, explainer *services.Explainer, cache *services.CacheService) *PredictionHandler {
	return &PredictionHandler{store: store, engine: engine, explainer: explainer, cache: cache}
}

// preparedInput is the validated, session-checked request shared by the four
// predict endpoints.
type preparedInput struct {
	meta     models.TelemetryMeta
	features []float64
	scaled   []float64
}

// prepare validates the session first, then the telemetry; either failure
// stops all downstream work before any model is invoked.
func (h *PredictionHandler) prepare(c *gin.Context) (*preparedInput, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, false
	}

	meta := services.ExtractMeta(raw)
	if _, err := h.store.Get(meta.SessionID); err != nil {
		respondSessionError(c, err)
		return nil, false
	}

	features, err := services.AssembleFeatures(raw, h.engine.FeatureColumns())
	if err != nil {
		respondPredictionError(c, err)
		return nil, false
	}

	scaled, err := h.engine.ScaleFeatures(features)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	return &preparedInput{meta: meta, features: features, scaled: scaled}, true
}

func (h *PredictionHandler) PredictLapTime(c *gin.Context) {
	in, ok := h.prepare(c)
	if !ok {
		return
	}

	value, confidence, err := h.engine.PredictLapTime(in.scaled)
	if err != nil {
		respondPredictionError(c, err)
		return
	}

	result := models.LapTimeResult{
		SessionID:        in.meta.SessionID,
		VehicleID:        in.meta.VehicleID,
		Lap:              in.meta.Lap,
		PredictedLapTime: value,
		Confidence:       confidence,
	}
	if wantsExplanation(c) {
		result.Explanation = h.explainer.ExplainPrediction(
			c.Request.Context(), h.engine.FeatureColumns(), in.features, value, services.ExplainLapTime)
	}

	h.record(in.meta.SessionID, models.PredictionLapTime, result)
	c.JSON(http.StatusOK, result)
}

func (h *PredictionHandler) PredictPit(c *gin.Context) {
	in, ok := h.prepare(c)
	if !ok {
		return
	}

	imminent, probability, err := h.engine.PredictPitImminent(in.scaled)
	if err != nil {
		respondPredictionError(c, err)
		return
	}

	result := models.PitImminentResult{
		SessionID:   in.meta.SessionID,
		VehicleID:   in.meta.VehicleID,
		Lap:         in.meta.Lap,
		PitImminent: imminent,
		Probability: probability,
	}
	if wantsExplanation(c) {
		result.Explanation = h.explainer.ExplainPrediction(
			c.Request.Context(), h.engine.FeatureColumns(), in.features, imminent, services.ExplainPit)
	}

	h.record(in.meta.SessionID, models.PredictionPitImminent, result)
	c.JSON(http.StatusOK, result)
}

func (h *PredictionHandler) PredictTire(c *gin.Context) {
	in, ok := h.prepare(c)
	if !ok {
		return
	}

	compound, confidence, err := h.engine.PredictTireCompound(in.scaled)
	if err != nil {
		respondPredictionError(c, err)
		return
	}

	result := models.TireCompoundResult{
		SessionID:         in.meta.SessionID,
		VehicleID:         in.meta.VehicleID,
		Lap:               in.meta.Lap,
		SuggestedCompound: compound,
		Confidence:        confidence,
	}
	if wantsExplanation(c) {
		result.Explanation = h.explainer.ExplainPrediction(
			c.Request.Context(), h.engine.FeatureColumns(), in.features, compound, services.ExplainTire)
	}

	h.record(in.meta.SessionID, models.PredictionTireCompound, result)
	c.JSON(http.StatusOK, result)
}

func (h *PredictionHandler) PredictAll(c *gin.Context) {
	in, ok := h.prepare(c)
	if !ok {
		return
	}

	combined, err := h.engine.PredictAll(in.scaled)
	if err != nil {
		respondPredictionError(c, err)
		return
	}

	result := *combined
	result.SessionID = in.meta.SessionID
	result.VehicleID = in.meta.VehicleID
	result.Lap = in.meta.Lap

	h.record(in.meta.SessionID, models.PredictionAll, result)
	c.JSON(http.StatusOK, result)
}

// record appends the result to the session log, invalidates any cached story
// for the session, and fans the record out to live subscribers.
func (h *PredictionHandler) record(sessionID string, taskType models.PredictionType, result models.PredictionResult) {
	rec := models.PredictionRecord{
		Type:      taskType,
		Timestamp: time.Now().UTC(),
		Result:    result,
	}
	if err := h.store.Append(sessionID, rec); err != nil {
		// Session vanished between the lookup and the append; the response
		// was still computed, so just drop the record.
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.cache.Delete(ctx, services.StoryCacheKey(sessionID))
		h.cache.Publish(ctx, services.LiveChannel, rec)
	}()
}

func wantsExplanation(c *gin.Context) bool {
	return c.Query("explain") == "true"
}

func respondPredictionError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var modelErr *models.ModelUnavailableError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &modelErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
