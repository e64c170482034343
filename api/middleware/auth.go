package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/host-sentinel/internal/auth"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	UsernameKey         = "username"
)

func JWTAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthorizationHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		if !strings.HasPrefix(header, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header format",
			})
			return
		}

		claims, err := authService.ValidateToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": message,
			})
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

func GetUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
