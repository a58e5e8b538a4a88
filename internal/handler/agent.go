package handler

import (
	"errors"
	"net/http"
	"strings"

	"stock-chat/internal/logger"
	"stock-chat/internal/model"
	"stock-chat/internal/service"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agent *service.AgentService
}

func NewAgentHandler(agent *service.AgentService) *AgentHandler {
	return &AgentHandler{agent: agent}
}

// POST /api/agent/should-i-buy
func (h *AgentHandler) ShouldIBuy(c *gin.Context) {
	var req model.ShouldIBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.agent.ShouldIBuy(c.Request.Context(), req)
	if err != nil {
		logger.Error("should-i-buy failed", "symbol", req.Symbol, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/agent/stock-report
// Requires a prior stored conversation for the session.
func (h *AgentHandler) StockReport(c *gin.Context) {
	var req model.StockReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	resp, err := h.agent.StockReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoHistory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("stock-report failed", "symbol", req.Symbol, "session", req.SessionID, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
