package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis fronts the process-wide cache shared with the customer-facing app.
// This service only ever invalidates entries; the app side repopulates.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedis(addr, password string, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("redis DEL failed", zap.String("key", key), zap.Error(err))
		return err
	}
	r.logger.Debug("cache invalidated", zap.String("key", key))
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
