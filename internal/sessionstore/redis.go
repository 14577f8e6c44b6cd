// Package sessionstore provides a Redis-backed storage for the session
// middleware, so flash messages survive process restarts when Redis is
// configured. Without Redis the server falls back to in-memory sessions.
package sessionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"blogly/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blogly:sess:"

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.SessionStoreErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.SessionStoreErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// RedisStorage implements fiber.Storage over a go-redis client.
type RedisStorage struct {
	client *redis.Client
}

// New connects to Redis at the given address (URL or host:port) and returns a
// session storage. It returns nil when Redis is unreachable so the caller can
// degrade to in-memory sessions.
func New(addr string) *RedisStorage {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("Invalid REDIS_URL, continuing with in-memory sessions", "url", addr, "error", err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing with in-memory sessions", "error", err)
		return nil
	}

	middleware.Logger.Info("Redis session storage connected")
	return &RedisStorage{client: client}
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

// Get retrieves the value for the given session key, or nil when absent.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores the value under the given session key with an expiry.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), keyPrefix+key, val, exp).Err()
}

// Delete removes the given session key.
func (s *RedisStorage) Delete(key string) error {
	return s.client.Del(context.Background(), keyPrefix+key).Err()
}

// Reset removes every session key.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close releases the underlying client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
