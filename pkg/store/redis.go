package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCallTimeout = 3 * time.Second

// Redis is a durable Backend stored in a redis server.
type Redis struct {
	client *redis.Client
	addr   string
}

// NewRedis connects to the server at uri and verifies it with a ping.
func NewRedis(uri string) (*Redis, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis uri: %w", err)
	}

	opt.PoolSize = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = redisCallTimeout
	opt.WriteTimeout = redisCallTimeout
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: connect redis %s: %w", opt.Addr, err)
	}
	return &Redis{client: client, addr: opt.Addr}, nil
}

func (r *Redis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Name() string {
	return "redis:" + r.addr
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
