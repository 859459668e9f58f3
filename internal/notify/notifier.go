// Package notify contains Notifier implementations. Delivery is
// fire-and-forget: the core never waits on or assumes successful delivery.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// LogNotifier writes alerts to the structured log. It is the default when no
// delivery webhook is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, userID string, alert domain.Alert) {
	slog.InfoContext(ctx, "Alert notification",
		"user_id", userID,
		"alert_id", alert.ID,
		"brand", alert.BrandName,
		"severity", alert.Severity,
		"score", alert.Sentiment.Overall.Score)
}

// WebhookNotifier POSTs the alert as JSON to a configured endpoint. Delivery
// happens in the background with its own timeout so a slow endpoint never
// blocks a monitoring tick.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(_ context.Context, userID string, alert domain.Alert) {
	go func() {
		payload, err := json.Marshal(map[string]any{
			"userId": userID,
			"alert":  alert,
		})
		if err != nil {
			slog.Error("Failed to marshal alert notification", "alert_id", alert.ID, "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
		if err != nil {
			slog.Error("Failed to build alert notification request", "alert_id", alert.ID, "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			slog.Warn("Alert notification delivery failed", "alert_id", alert.ID, "error", err)
			return
		}
		_ = resp.Body.Close()
	}()
}
