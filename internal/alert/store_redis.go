package alert

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// RedisStore keeps per-user alert lists in Redis so alert history survives
// process restarts. Lists are newest-first (LPUSH) and trimmed to the same
// cap as the memory store.
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore creates a store from a Redis URL
// (e.g. "redis://localhost:6379").
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStore{rdb: goredis.NewClient(opts)}, nil
}

func userAlertsKey(userID string) string {
	return "alerts:user:" + userID
}

func (s *RedisStore) RecordAlert(ctx context.Context, alert domain.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	key := userAlertsKey(alert.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxAlertsPerUser-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record alert: %w", err)
	}
	return nil
}

func (s *RedisStore) GetUserAlerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	raw, err := s.rdb.LRange(ctx, userAlertsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(raw))
	for _, item := range raw {
		var a domain.Alert
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			// Skip corrupt entries rather than failing the whole query.
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
