package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/services"

	"github.com/gin-gonic/gin"
)

const storyCacheTTL = 10 * time.Minute

type StoryHandler struct {
	store     services.SessionStore
	generator *services.StoryGenerator
	cache     *services.CacheService
}

func NewStoryHandler(store services.SessionStore, generator *services.StoryGenerator, cache *services.CacheService) *StoryHandler {
	return &StoryHandler{store: store, generator: generator, cache: cache}
}

type StoryResponse struct {
	SessionID    string               `json:"session_id"`
	VehicleID    int                  `json:"vehicle_id"`
	Story        string               `json:"story"`
	RaceEvents   []models.RaceEvent   `json:"race_events,omitempty"`
	SummaryStats *models.SummaryStats `json:"summary_stats,omitempty"`
}

type autoStoryRequest struct {
	Weather *models.WeatherData `json:"weather"`
}

// GenerateStoryAuto derives events and stats from the session's own
// prediction log before calling the narrative collaborator. The optional
// request body may carry a weather block for the summary line.
func (h *StoryHandler) GenerateStoryAuto(c *gin.Context) {
	id := c.Param("id")
	session, err := h.store.Get(id)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	var req autoStoryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	records, err := h.store.Predictions(id)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	events := services.ExtractRaceEvents(records)
	stats := services.CalculateSummaryStats(records, req.Weather)
	log.Printf("session %s: %d events, %d laps for story generation", id, len(events), stats.TotalLaps)

	resp := StoryResponse{
		SessionID:    id,
		VehicleID:    session.VehicleID,
		RaceEvents:   events,
		SummaryStats: &stats,
	}

	// Cached narratives are invalidated whenever a new prediction lands.
	cacheKey := services.StoryCacheKey(id)
	var cachedStory string
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cachedStory); err == nil && cachedStory != "" {
		resp.Story = cachedStory
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Story = h.generator.GenerateStory(c.Request.Context(), id, session.VehicleID, events, stats)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.cache.Set(ctx, cacheKey, resp.Story, storyCacheTTL)
	}()

	c.JSON(http.StatusOK, resp)
}

type storyRequest struct {
	SessionID    string              `json:"session_id" binding:"required"`
	VehicleID    int                 `json:"vehicle_id"`
	RaceEvents   []models.RaceEvent  `json:"race_events"`
	SummaryStats models.SummaryStats `json:"summary_stats"`
}

// GenerateStory accepts caller-supplied events and stats, bypassing
// extraction. Useful when the narrative inputs were computed externally.
func (h *StoryHandler) GenerateStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if _, err := h.store.Get(req.SessionID); err != nil {
		respondSessionError(c, err)
		return
	}

	story := h.generator.GenerateStory(c.Request.Context(), req.SessionID, req.VehicleID, req.RaceEvents, req.SummaryStats)

	c.JSON(http.StatusOK, StoryResponse{
		SessionID: req.SessionID,
		VehicleID: req.VehicleID,
		Story:     story,
	})
}

// GetEvents exposes the extraction and aggregation results without invoking
// the narrative collaborator.
func (h *StoryHandler) GetEvents(c *gin.Context) {
	id := c.Param("id")
	records, err := h.store.Predictions(id)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	events := services.ExtractRaceEvents(records)
	stats := services.CalculateSummaryStats(records, nil)

	c.JSON(http.StatusOK, gin.H{
		"session_id":    id,
		"race_events":   events,
		"summary_stats": stats,
	})
}
