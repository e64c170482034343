package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/host-sentinel/pkg/config"
)

type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", TraceIDHeader},
		ExposeHeaders: []string{TraceIDHeader},
	}
}

// CORSFromConfig falls back to the defaults for any list left empty.
func CORSFromConfig(cfg config.CORSConfig) CORSConfig {
	out := DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		out.AllowOrigins = cfg.AllowedOrigins
	}
	if len(cfg.AllowedMethods) > 0 {
		out.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		out.AllowHeaders = cfg.AllowedHeaders
	}
	if len(cfg.ExposedHeaders) > 0 {
		out.ExposeHeaders = cfg.ExposedHeaders
	}
	out.AllowCredentials = cfg.AllowCredentials
	return out
}

func CORS(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	exposed := strings.Join(cfg.ExposeHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && originAllowed(cfg.AllowOrigins, origin) {
			// A wildcard cannot be combined with credentials, so echo the origin.
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		if exposed != "" {
			c.Header("Access-Control-Expose-Headers", exposed)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
