package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/host-sentinel/internal/auth"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/validation"
)

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(username, password string) error
}

type AuthHandler struct {
	credentials Authenticator
	authService *auth.Service
}

func NewAuthHandler(credentials Authenticator, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		authService: authService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"s3cret!Pass"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-16T10:30:00Z"`
	Username  string    `json:"username" example:"admin"`
}

// Login godoc
// @Summary Log in
// @Description Exchange the configured admin credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Username = validation.SanitizeString(req.Username)
	if err := validation.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.Authenticate(req.Username, req.Password); err != nil {
		logger.FromContext(c.Request.Context()).WithField("username", req.Username).Warn("Login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, expiresAt, err := h.authService.GenerateToken(req.Username)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  req.Username,
	})
}
