package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"main/model"
)

// AnalysisLogCache is an optional Redis read-through cache for a user's
// analysis log list. The service runs fine without it: a nil cache is a
// no-op on every method.
type AnalysisLogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisLogCache connects to Redis and verifies the connection.
func NewAnalysisLogCache(redisURL string, ttl time.Duration) (*AnalysisLogCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &AnalysisLogCache{client: client, ttl: ttl}, nil
}

func logsKey(userID string) string {
	return fmt.Sprintf("analysis_logs:%s", userID)
}

// GetUserLogs returns the cached log list for a user, or (nil, nil) on a
// cache miss.
func (c *AnalysisLogCache) GetUserLogs(ctx context.Context, userID string) ([]*model.AnalysisLog, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, logsKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get logs from cache: %v", err)
	}

	var logs []*model.AnalysisLog
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached logs: %v", err)
	}
	return logs, nil
}

// SetUserLogs caches the log list for a user.
func (c *AnalysisLogCache) SetUserLogs(ctx context.Context, userID string, logs []*model.AnalysisLog) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("failed to marshal logs: %v", err)
	}

	if err := c.client.Set(ctx, logsKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache logs: %v", err)
	}
	return nil
}

// Invalidate drops the cached list for a user. Called after every append so
// readers never see a stale list missing the newest run.
func (c *AnalysisLogCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}

	if err := c.client.Del(ctx, logsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate log cache: %v", err)
	}
	return nil
}
