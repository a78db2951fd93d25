package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisAdapter implements KV over a go-redis client
type redisAdapter struct {
	c      redis.Cmdable
	closer func() error
}

func newRedisAdapter(c *redis.Client) *redisAdapter {
	return &redisAdapter{c: c, closer: c.Close}
}

func (a *redisAdapter) Ping(ctx context.Context) error {
	return a.c.Ping(ctx).Err()
}

func (a *redisAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := a.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (a *redisAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return a.c.Set(ctx, key, val, ttl).Err()
}

func (a *redisAdapter) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return a.c.Del(ctx, keys...).Err()
}

func (a *redisAdapter) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
