package handlers

import (
	"net/http"

	"taxline/middleware"
	"taxline/models"
	"taxline/services/agent"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the conversational agent.
type ChatHandler struct {
	Agent agent.AgentService
}

func NewChatHandler(agentSvc agent.AgentService) *ChatHandler {
	return &ChatHandler{Agent: agentSvc}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Agent.ProcessUserInput(c.Request.Context(), sess, req.Message)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "agent unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}
