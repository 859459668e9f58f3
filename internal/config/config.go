// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// RedisURL enables the Redis-backed alert store when set; alerts stay
	// in process memory otherwise.
	RedisURL string

	// MentionsAPIURL is the upstream mention aggregation endpoint. When
	// empty, no mention sources are registered and monitoring ticks see no
	// new mentions.
	MentionsAPIURL string

	// NotifyWebhookURL receives alert notifications when set; alerts are
	// logged otherwise.
	NotifyWebhookURL string

	CheckInterval   time.Duration
	AlertThreshold  float64
	ProviderTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		RedisURL:         getEnv("REDIS_URL", ""),
		MentionsAPIURL:   getEnv("MENTIONS_API_URL", ""),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
	}

	var err error
	cfg.CheckInterval, err = getDurationEnv("MONITOR_CHECK_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	if cfg.CheckInterval <= 0 {
		return nil, fmt.Errorf("MONITOR_CHECK_INTERVAL must be positive")
	}

	cfg.ProviderTimeout, err = getDurationEnv("PROVIDER_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}

	cfg.AlertThreshold, err = getFloatEnv("ALERT_THRESHOLD", -0.3)
	if err != nil {
		return nil, err
	}
	if cfg.AlertThreshold < -1 || cfg.AlertThreshold > 1 {
		return nil, fmt.Errorf("ALERT_THRESHOLD must be within [-1, 1]")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. \"5m\"): %w", key, err)
	}
	return d, nil
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
