package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Sentiment analysis
	s.echo.POST("/api/analyze", s.handleAnalyze)
	s.echo.GET("/api/brands/:brand/sentiment", s.handleBrandSentiment)

	// Real-time monitoring
	s.echo.POST("/api/monitoring", s.handleStartMonitoring)
	s.echo.DELETE("/api/monitoring/:id", s.handleStopMonitoring)
	s.echo.GET("/api/monitoring", s.handleListMonitors)
	s.echo.GET("/api/users/:userID/alerts", s.handleUserAlerts)

	// Feedback log
	s.echo.POST("/api/feedback", s.handleRecordFeedback)
	s.echo.GET("/api/feedback/stats", s.handleLearningStats)
}
