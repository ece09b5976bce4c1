package handlers

import (
	"errors"
	"net/http"

	"taxline/middleware"
	"taxline/services/agent"
	"taxline/services/identity"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler manages chat session lifecycle and identity
// verification.
type SessionHandler struct {
	Store    agent.SessionStore
	Identity identity.IdentityService
}

func NewSessionHandler(store agent.SessionStore, identitySvc identity.IdentityService) *SessionHandler {
	return &SessionHandler{Store: store, Identity: identitySvc}
}

// OpenSessionHandler creates a fresh, unverified session.
func (h *SessionHandler) OpenSessionHandler(c *gin.Context) {
	sess := agent.NewSession()
	if err := h.Store.Save(c.Request.Context(), sess); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to open session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": sess.ID})
}

type verifyRequest struct {
	Name       string `json:"name" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required"`
}

// VerifyIdentityHandler matches the caller against the tax records
// store and pins the verified identity onto the session.
func (h *SessionHandler) VerifyIdentityHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ident, err := h.Identity.Verify(c.Request.Context(), req.Name, req.CustomerID)
	if errors.Is(err, identity.ErrNotRecognized) {
		utils.JSONError(c, http.StatusUnauthorized, "verification failed", "we could not verify your credentials")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "verification unavailable", err.Error())
		return
	}

	sess.Verified = ident
	if err := h.Store.Save(c.Request.Context(), sess); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Hello " + ident.Name + ", you are verified!",
		"verified": ident,
	})
}
