package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/alert"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/app"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/config"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/monitor"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/notify"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/platform/logging"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/provider"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/sentiment"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/server"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/version"
)

// alertStore is the union of what the scheduler and the health check need.
type alertStore interface {
	domain.AlertStore
	Ping(ctx context.Context) error
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupAlertStore(cfg *config.Config) alertStore {
	if cfg.RedisURL == "" {
		slog.Info("Using in-memory alert store")
		return alert.NewMemoryStore()
	}

	store, err := alert.NewRedisStore(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to create Redis alert store", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	slog.Info("Using Redis alert store")
	return store
}

func setupProvider(cfg *config.Config) *provider.MultiSource {
	mentionProvider := provider.NewMultiSource(cfg.ProviderTimeout)
	if cfg.MentionsAPIURL == "" {
		slog.Warn("MENTIONS_API_URL not set, monitoring will see no new mentions")
		return mentionProvider
	}

	for _, src := range []domain.Source{domain.SourceSocial, domain.SourceNews, domain.SourceReview, domain.SourceCustom} {
		mentionProvider.Register(provider.NewHTTPSource(src, cfg.MentionsAPIURL))
	}
	return mentionProvider
}

func setupNotifier(cfg *config.Config) domain.Notifier {
	if cfg.NotifyWebhookURL != "" {
		return notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
	}
	return notify.NewLogNotifier()
}

func runGracefulShutdown(srv *server.Server, service *app.Service) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		service.Stop()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()
	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Version)
	metrics.BuildInfo.WithLabelValues(version.Version, version.Commit, version.BuildTime, version.GoVersion()).Set(1)

	alerts := setupAlertStore(cfg)
	mentionProvider := setupProvider(cfg)
	notifier := setupNotifier(cfg)

	registry := monitor.NewRegistry()
	scheduler := monitor.NewScheduler(registry, mentionProvider, alerts, notifier, clock, monitor.Defaults{
		CheckInterval:  cfg.CheckInterval,
		AlertThreshold: cfg.AlertThreshold,
	})
	feedback := sentiment.NewFeedbackLog(clock)

	service := app.NewService(registry, scheduler, mentionProvider, alerts, feedback, clock)
	srv := server.NewServer(service, alerts, clock)

	done := runGracefulShutdown(srv, service)

	if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Application stopped")
}
