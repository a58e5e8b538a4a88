package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"stock-chat/internal/cache"
	"stock-chat/internal/config"
	"stock-chat/internal/handler"
	"stock-chat/internal/logger"
	"stock-chat/internal/middleware"
	"stock-chat/internal/model"
	"stock-chat/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Session{}, &model.ChatLog{}, &model.Member{}); err != nil {
		logger.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	market := service.NewMarketClient(cfg.Finnhub, cache.New())
	llm := service.NewLLMClient(cfg.Ollama)
	logs := service.NewChatLogService(db)

	chatH := handler.NewChatHandler(service.NewChatService(market, llm, logs))
	agentH := handler.NewAgentHandler(service.NewAgentService(market, llm, logs))
	toolsH := handler.NewToolsHandler(market)
	marketH := handler.NewMarketHandler(market)
	authH := handler.NewAuthHandler(service.NewAuthService(db), []byte(cfg.Auth.Secret))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "model": cfg.Ollama.Model, "ollama": cfg.Ollama.BaseURL})
	})

	r.POST("/api/login", authH.Login)
	api := r.Group("/api")
	if cfg.Auth.Enabled {
		api.Use(middleware.JWTAuth([]byte(cfg.Auth.Secret)))
	}
	api.POST("/chat", chatH.Chat)
	api.POST("/agent/should-i-buy", agentH.ShouldIBuy)
	api.POST("/agent/stock-report", agentH.StockReport)
	api.GET("/tools/quote", toolsH.Quote)
	api.GET("/tools/profile", toolsH.Profile)
	api.GET("/tools/metrics", toolsH.Metrics)
	api.GET("/tools/news", toolsH.News)
	api.GET("/market/overview", marketH.Overview)

	if dir := cfg.Server.FrontendDir; dir != "" {
		r.Static("/static", dir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(dir, "index.html"))
		})
		r.GET("/market", func(c *gin.Context) {
			c.File(filepath.Join(dir, "market.html"))
		})
	}

	logger.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server failed", "err", err)
	}
}
