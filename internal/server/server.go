// Package server exposes the sentiment subsystem over HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/app"
	apperrors "github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/errors"
)

// AlertStorePinger is the health-check view of the alert store.
type AlertStorePinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo       *echo.Echo
	service    *app.Service
	alertStore AlertStorePinger
	clock      clockwork.Clock
	startTime  time.Time
}

func NewServer(service *app.Service, alertStore AlertStorePinger, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:       e,
		service:    service,
		alertStore: alertStore,
		clock:      clock,
		startTime:  clock.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Start begins serving on the given port. It blocks until shutdown.
func (s *Server) Start(port string) error {
	if err := s.echo.Start(":" + port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
