package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"market/internal/model"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisItemCache хранит объявления в Redis в виде JSON с TTL.
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisItemCache подключается к Redis и проверяет соединение.
func NewRedisItemCache(ctx context.Context, addr string, ttl time.Duration) (*RedisItemCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisItemCache{client: client, ttl: ttl}, nil
}

func itemKey(id int64) string {
	return "item:" + strconv.FormatInt(id, 10)
}

func (c *RedisItemCache) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	data, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var it model.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *RedisItemCache) SetItem(ctx context.Context, it *model.Item) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(it.ID), data, c.ttl).Err()
}

func (c *RedisItemCache) DeleteItem(ctx context.Context, id int64) error {
	return c.client.Del(ctx, itemKey(id)).Err()
}

func (c *RedisItemCache) Close() error {
	return c.client.Close()
}
