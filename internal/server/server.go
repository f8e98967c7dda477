// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/veridict/veridict/internal/article"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
)

// Server is the Veridict HTTP front end
type Server struct {
	router *gin.Engine
	addr   string
}

// New builds the server with all routes registered
func New(cfg *model.Config, p *pipeline.Pipeline, extractor *article.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, p, extractor, logger)

	return &Server{router: router, addr: cfg.Server.Addr}
}

// SetupRoutes registers all endpoints on the router
func SetupRoutes(router *gin.Engine, p *pipeline.Pipeline, extractor *article.Extractor, logger *slog.Logger) {
	router.GET("/healthz", HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze", HandleAnalyze(p, logger))
		api.POST("/extract-article", HandleExtractArticle(extractor, logger))
	}
}

// Run blocks serving HTTP until the listener fails
func (s *Server) Run() error {
	return s.router.Run(s.addr)
}
