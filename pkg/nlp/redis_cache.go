package nlp

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisCache shares classification results between replicas. Values are stored
// as JSON under prefix+text.
type RedisCache[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisCache[V any](client *redis.Client, prefix string, ttl time.Duration, log *logrus.Logger) *RedisCache[V] {
	return &RedisCache[V]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (c *RedisCache[V]) Get(ctx context.Context, key string) (V, bool) {
	var value V

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"prefix": c.prefix,
			"error":  err.Error(),
		}).Warn("Redis cache read failed, treating as miss")
		return value, false
	}

	if err := jsoniter.Unmarshal(data, &value); err != nil {
		c.log.WithFields(logrus.Fields{
			"prefix": c.prefix,
			"error":  err.Error(),
		}).Warn("Redis cache entry is corrupt, treating as miss")
		return value, false
	}

	return value, true
}

func (c *RedisCache[V]) Set(ctx context.Context, key string, value V) {
	data, err := jsoniter.Marshal(value)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"prefix": c.prefix,
			"error":  err.Error(),
		}).Warn("Failed to encode cache entry")
		return
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.log.WithFields(logrus.Fields{
			"prefix": c.prefix,
			"error":  err.Error(),
		}).Warn("Redis cache write failed")
	}
}

// Len is best effort; it counts keys under the prefix.
func (c *RedisCache[V]) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		c.log.WithField("error", err.Error()).Warn("Failed to count redis cache keys")
	}
	return count
}
