package intake

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imkonsowa/restaurant-concierge/config"
	"github.com/imkonsowa/restaurant-concierge/models"
	"github.com/redis/go-redis/v9"
)

// RedisSink appends reservations as JSON to a redis list, oldest first.
type RedisSink struct {
	client redis.Cmdable
	key    string
}

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisSink(client redis.Cmdable, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Store(ctx context.Context, r models.Reservation) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation: %w", err)
	}

	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push reservation: %w", err)
	}

	return nil
}
