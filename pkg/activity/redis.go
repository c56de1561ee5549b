package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/log"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "agentflow:activity"

// Redis keeps the feed in a capped Redis list.
type Redis struct {
	client   *redis.Client
	key      string
	capacity int
	logger   *slog.Logger
}

func NewRedis(ctx context.Context, rawURL string, capacity int) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger := log.WithModule("activity")
	logger.InfoContext(ctx, "Connected to Redis", "addr", opts.Addr, "db", opts.DB)

	return NewRedisWithClient(client, DefaultRedisKey, capacity), nil
}

func NewRedisWithClient(client *redis.Client, key string, capacity int) *Redis {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Redis{
		client:   client,
		key:      key,
		capacity: capacity,
		logger:   log.WithModule("activity"),
	}
}

func (r *Redis) Append(ctx context.Context, activity events.Activity) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, payload)
		pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))

		return nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to append activity", "error", err, "event_type", activity.Type)

		return err
	}

	return nil
}

func (r *Redis) Recent(ctx context.Context, n int) ([]events.Activity, error) {
	if n <= 0 || n > r.capacity {
		n = r.capacity
	}

	raw, err := r.client.LRange(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	recent := make([]events.Activity, 0, len(raw))

	for _, item := range raw {
		var activity events.Activity
		if err := json.Unmarshal([]byte(item), &activity); err != nil {
			r.logger.WarnContext(ctx, "Skipping malformed activity", "error", err)

			continue
		}

		recent = append(recent, activity)
	}

	return recent, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
