package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/app"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	apperrors "github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/errors"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/monitor"
)

type analyzeRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Empty text is not an error: the scorer resolves it to a neutral result.
	result := s.service.AnalyzeSingleContent(req.Text, req.Context)
	return writeJSON(c, 200, result)
}

func (s *Server) handleBrandSentiment(c echo.Context) error {
	brand := c.Param("brand")
	if brand == "" {
		return apperrors.ValidationError("brand name is required")
	}

	opts := app.BrandOptions{
		Sources:  parseSources(c.QueryParam("sources")),
		Keywords: splitCSV(c.QueryParam("keywords")),
	}
	if raw := c.QueryParam("timeframe"); raw != "" {
		timeframe, err := time.ParseDuration(raw)
		if err != nil {
			return apperrors.ValidationError("timeframe must be a duration (e.g. \"24h\")").WithField("timeframe", raw)
		}
		opts.Timeframe = timeframe
	}

	report := s.service.AnalyzeBrandSentiment(c.Request().Context(), brand, opts)
	return writeJSON(c, 200, report)
}

type startMonitoringRequest struct {
	UserID         string   `json:"userId"`
	BrandName      string   `json:"brandName"`
	Sources        []string `json:"sources"`
	Keywords       []string `json:"keywords"`
	AlertThreshold *float64 `json:"alertThreshold"`
	CheckInterval  string   `json:"checkInterval"`
}

func (s *Server) handleStartMonitoring(c echo.Context) error {
	var req startMonitoringRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.UserID == "" {
		return apperrors.ValidationError("userId is required")
	}
	if req.BrandName == "" {
		return apperrors.ValidationError("brandName is required")
	}

	opts := monitor.Options{
		Keywords:       req.Keywords,
		AlertThreshold: req.AlertThreshold,
	}
	for _, raw := range req.Sources {
		opts.Sources = append(opts.Sources, domain.Source(raw))
	}
	if req.CheckInterval != "" {
		interval, err := time.ParseDuration(req.CheckInterval)
		if err != nil {
			return apperrors.ValidationError("checkInterval must be a duration (e.g. \"5m\")").WithField("checkInterval", req.CheckInterval)
		}
		opts.CheckInterval = interval
	}

	result := s.service.StartRealtimeMonitoring(req.UserID, req.BrandName, opts)
	return writeJSON(c, 200, result)
}

func (s *Server) handleStopMonitoring(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid monitoring ID").WithField("id", c.Param("id"))
	}

	result := s.service.StopMonitoring(id)
	if !result.Success {
		return writeJSON(c, 404, result)
	}
	return writeJSON(c, 200, result)
}

func (s *Server) handleListMonitors(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return apperrors.ValidationError("userId query parameter is required")
	}
	return writeJSON(c, 200, s.service.ListUserMonitors(userID))
}

func (s *Server) handleUserAlerts(c echo.Context) error {
	userID := c.Param("userID")
	if userID == "" {
		return apperrors.ValidationError("userID is required")
	}

	result := s.service.GetUserAlerts(c.Request().Context(), userID)
	if !result.Success {
		return apperrors.InternalError("failed to load alerts", nil).WithField("user_id", userID)
	}
	return writeJSON(c, 200, result)
}

type feedbackRequest struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

func (s *Server) handleRecordFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Text == "" {
		return apperrors.ValidationError("text is required")
	}
	if req.Label == "" {
		return apperrors.ValidationError("label is required")
	}

	return writeJSON(c, 200, s.service.RecordFeedback(req.Text, req.Label))
}

func (s *Server) handleLearningStats(c echo.Context) error {
	return writeJSON(c, 200, s.service.LearningStats())
}

func writeJSON(c echo.Context, status int, payload any) error {
	if err := c.JSON(status, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseSources(raw string) []domain.Source {
	var sources []domain.Source
	for _, item := range splitCSV(raw) {
		sources = append(sources, domain.Source(item))
	}
	return sources
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
