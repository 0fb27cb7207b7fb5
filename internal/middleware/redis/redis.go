// Package redis is a redis implementation of the cache storage.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("layer", "middleware").WithField("package", "redis")

const keyPrefix = "argus:cache:"

// Storage keeps items in redis. Redis failures are logged and treated as cache misses.
type Storage struct {
	c redis.UniversalClient
}

// NewStorage creates new instance of Storage.
func NewStorage(c redis.UniversalClient) *Storage {
	return &Storage{c: c}
}

// Get ...
func (s *Storage) Get(ctx context.Context, key string) []byte {
	data, err := s.c.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Error("failed to get cached item")
		}
		return nil
	}

	return data
}

// Set ...
func (s *Storage) Set(ctx context.Context, key string, content []byte, ttl time.Duration) {
	if err := s.c.Set(ctx, keyPrefix+key, content, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Error("failed to set cached item")
	}
}

// Ping ...
func (s *Storage) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
