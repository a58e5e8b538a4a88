package handler

import (
	"net/http"

	"stock-chat/internal/logger"
	"stock-chat/internal/model"
	"stock-chat/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// POST /api/chat
// Enrichment failures are already absorbed inside the pipeline; an error
// here means the model call itself failed.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), req)
	if err != nil {
		logger.Error("chat failed", "session", req.SessionID, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
