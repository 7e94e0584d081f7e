package session

import (
	"context"
	"errors"
	"time"

	"nova-library/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "nova:session:"

// RedisConfig holds configuration for Redis session storage
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStorage implements fiber.Storage so visitor carts survive restarts
// and are shared between instances.
type RedisStorage struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
}

// NewRedisStorage connects to Redis and verifies the connection
func NewRedisStorage(cfg RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	log := logger.Get()
	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Str("prefix", prefix).Msg("redis session storage connected")

	return &RedisStorage{
		client:    client,
		keyPrefix: prefix,
		timeout:   3 * time.Second,
	}, nil
}

func (s *RedisStorage) key(k string) string {
	return s.keyPrefix + k
}

func (s *RedisStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil when the key does not exist
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; a zero exp keeps the key forever
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	return s.client.Set(ctx, s.key(key), val, exp).Err()
}

// Delete removes a key
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	return s.client.Del(ctx, s.key(key)).Err()
}

// Reset removes every session under the prefix
func (s *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 100).Iterator()
	pipe := s.client.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// HealthCheck pings Redis
func (s *RedisStorage) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
