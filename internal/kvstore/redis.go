package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rshade/ecoroute/internal/config"
)

// connectTimeout bounds the initial ping of network backends.
const connectTimeout = 5 * time.Second

// RedisStore keeps values as plain redis strings.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. Close closes the client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// ConnectRedis builds a client from cfg. It returns nil when no address is
// configured.
func ConnectRedis(cfg config.StorageConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// OpenRedis connects to redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, cfg config.StorageConfig) (*RedisStore, error) {
	client := ConnectRedis(cfg)
	if client == nil {
		return nil, fmt.Errorf("%w: redis address not configured", ErrStorageUnavailable)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %w", ErrStorageUnavailable, cfg.RedisAddr, err)
	}
	return NewRedisStore(client), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("redis get", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return unavailable("redis set", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return unavailable("redis del", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
