package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps each key as one JSON string value.
type RedisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to Redis and pings it once.
func NewRedisStore(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

// Load reads the value under key into dst. A missing or unparsable value
// leaves dst untouched.
func (rs *RedisStore) Load(ctx context.Context, key string, into interface{}) error {
	data, err := rs.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	decodeValue(data, into, rs.logger, key)
	return nil
}

// Save replaces the value under key.
func (rs *RedisStore) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rs.rdb.Set(ctx, key, data, 0).Err()
}

// Close releases the client connection.
func (rs *RedisStore) Close() error {
	return rs.rdb.Close()
}
