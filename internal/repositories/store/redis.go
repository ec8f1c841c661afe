package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "dejavu:"

// RedisConfig holds configuration for the Redis store
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// Prefix is prepended to every key; defaults to "dejavu:"
	Prefix string
}

// redisStore implements Store with one JSON string value per key
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed store
func NewRedis(cfg *RedisConfig) (*redisStore, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &redisStore{
		client: cfg.RedisClient,
		prefix: prefix,
	}, nil
}

func (r *redisStore) key(key string) string {
	return fmt.Sprintf("%s%s", r.prefix, key)
}

// Load gets and decodes the value stored under key
func (r *redisStore) Load(ctx context.Context, key string, dest any) error {
	if err := validKey(key); err != nil {
		return err
	}

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return errors.Wrapf(err, "failed to get %s", key)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(ErrCorrupt, "%s: %v", key, err)
	}
	return nil
}

// Save overwrites the value stored under key
func (r *redisStore) Save(ctx context.Context, key string, value any) error {
	if err := validKey(key); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}

	// No expiration, the documents are durable state
	if err := r.client.Set(ctx, r.key(key), raw, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to save %s", key)
	}
	return nil
}
