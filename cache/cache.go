package cache

import (
	"Pronostico/database"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache instance, ensuring that RedisClient is not nil.
func NewCache() (*Cache, error) {
	if database.RedisClient == nil {
		return nil, errors.New("Redis client is not initialized")
	}
	return &Cache{client: database.RedisClient}, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	return c.client.Del(ctx, key).Err()
}

// DeleteAll removes every key matching the pattern, using SCAN to avoid
// blocking on large keyspaces.
func (c *Cache) DeleteAll(ctx context.Context, pattern string) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c.client == nil {
		return "", errors.New("Redis client is not initialized")
	}
	return c.client.Get(ctx, key).Result()
}

// GetJSON reads a cached JSON document into out. Returns false on a miss or
// any cache error; a broken cache never fails the request.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	cached, err := c.Get(ctx, key)
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read %s from cache: %v", key, err)
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		log.Printf("Failed to decode cached %s: %v", key, err)
		return false, err
	}
	return true, nil
}

// SetJSON stores a value as JSON. Failures are logged and swallowed; the
// cache is an optimization, not a source of truth.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	encoded, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to encode %s for cache: %v", key, err)
		return
	}
	if err := c.Set(ctx, key, encoded, expiration); err != nil {
		log.Printf("Failed to set %s in cache: %v", key, err)
	}
}

func (c *Cache) DeleteBatch(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	return c.client.Del(ctx, keys...).Err()
}
