package handlers

import (
	"net/http"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/config"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues operator tokens against the single configured
// credential pair. The password hash is computed once at construction so the
// plaintext never sticks around.
type AuthHandler struct {
	authService  *services.AuthService
	username     string
	passwordHash string
}

func NewAuthHandler(authService *services.AuthService, cfg config.AuthConfig) (*AuthHandler, error) {
	hash, err := authService.HashPassword(cfg.Password)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		authService:  authService,
		username:     cfg.Username,
		passwordHash: hash,
	}, nil
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.username || !h.authService.CheckPassword(h.passwordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(req.Username, "operator")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}
