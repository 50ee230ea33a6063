package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	store services.SessionStore
}

func NewSessionHandler(store services.SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

type CreateSessionRequest struct {
	VehicleID int    `json:"vehicle_id" binding:"required"`
	RaceName  string `json:"race_name"`
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RaceName == "" {
		req.RaceName = "Race 1"
	}

	session := h.store.Create(req.VehicleID, req.RaceName)
	log.Printf("created session %s for vehicle %d", session.SessionID, session.VehicleID)

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) CloseSession(c *gin.Context) {
	session, err := h.store.Close(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	log.Printf("closed session %s", session.SessionID)
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) ListPredictions(c *gin.Context) {
	id := c.Param("id")
	records, err := h.store.Predictions(id)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	p := ParsePagination(c)
	start, end := p.Slice(len(records))

	c.JSON(http.StatusOK, gin.H{
		"session_id":       id,
		"prediction_count": len(records),
		"predictions":      records[start:end],
	})
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
