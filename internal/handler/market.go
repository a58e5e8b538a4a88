package handler

import (
	"net/http"
	"strconv"

	"stock-chat/internal/service"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	market *service.MarketClient
}

func NewMarketHandler(market *service.MarketClient) *MarketHandler {
	return &MarketHandler{market: market}
}

// GET /api/market/overview?category=&news_limit=
// Never fails as a whole; per-symbol errors ride inside the payload.
func (h *MarketHandler) Overview(c *gin.Context) {
	category := c.DefaultQuery("category", "general")
	newsLimit := 12
	if v := c.Query("news_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			newsLimit = n
		}
	}

	c.JSON(http.StatusOK, h.market.Overview(c.Request.Context(), category, newsLimit))
}
