package middleware

import (
	"net/http"

	"taxline/models"
	"taxline/services/agent"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the caller's session from the
// X-Session-ID header and attaches it to the request context.
func SessionMiddleware(store agent.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing session", "provide the X-Session-ID header from POST /api/session")
			c.Abort()
			return
		}
		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "session lookup failed", err.Error())
			c.Abort()
			return
		}
		if sess == nil {
			utils.JSONError(c, http.StatusUnauthorized, "unknown or expired session", "open a new session via POST /api/session")
			c.Abort()
			return
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session attached by SessionMiddleware.
func SessionFromContext(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
