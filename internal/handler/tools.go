package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"stock-chat/internal/service"

	"github.com/gin-gonic/gin"
)

// ToolsHandler exposes the market data lookups as debug passthroughs.
type ToolsHandler struct {
	market *service.MarketClient
}

func NewToolsHandler(market *service.MarketClient) *ToolsHandler {
	return &ToolsHandler{market: market}
}

// GET /api/tools/quote?symbol=
func (h *ToolsHandler) Quote(c *gin.Context) {
	h.passthrough(c, h.market.Quote)
}

// GET /api/tools/profile?symbol=
func (h *ToolsHandler) Profile(c *gin.Context) {
	h.passthrough(c, h.market.Profile)
}

// GET /api/tools/metrics?symbol=
func (h *ToolsHandler) Metrics(c *gin.Context) {
	h.passthrough(c, h.market.Metrics)
}

// GET /api/tools/news?symbol=&days=
func (h *ToolsHandler) News(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	days := 7
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	today := time.Now()
	from := today.AddDate(0, 0, -days).Format("2006-01-02")
	to := today.Format("2006-01-02")
	news, err := h.market.News(c.Request.Context(), symbol, from, to)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", service.TruncateNews(news, 5))
}

func (h *ToolsHandler) passthrough(c *gin.Context, fetch func(context.Context, string) (json.RawMessage, error)) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	data, err := fetch(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
