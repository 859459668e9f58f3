package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	return writeJSON(c, 200, map[string]any{
		"status":  "ok",
		"uptime":  s.clock.Since(s.startTime).Seconds(),
		"version": version.Version,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.alertStore.Ping(ctx); err != nil {
		return writeJSON(c, 503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "alert_store",
			"error":        err.Error(),
		})
	}

	return writeJSON(c, 200, map[string]string{"status": "ready"})
}
