package middleware

import (
	"crypto/subtle"
	"net/http"

	"taxline/config"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards admin endpoints with a shared API key.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := config.AppConfig.AdminAPIKey
		if configured == "" {
			utils.JSONError(c, http.StatusServiceUnavailable, "admin endpoints disabled", "ADMIN_API_KEY is not configured")
			c.Abort()
			return
		}
		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "invalid admin key")
			c.Abort()
			return
		}
		c.Next()
	}
}
