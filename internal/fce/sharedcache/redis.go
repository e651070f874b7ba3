package sharedcache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the production Client, connecting via redis.ParseURL
// and redis.NewClient.
type RedisClient struct {
	conn *redis.Client
}

// NewRedisClient parses addr (a redis:// URL) and connects.
func NewRedisClient(addr string) (*RedisClient, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}
	return &RedisClient{conn: redis.NewClient(opt)}, nil
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisClient) MGet(ctx context.Context, keys []string) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	raw, err := r.conn.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(keys))
	for i, k := range keys {
		if raw[i] == nil {
			out[i] = Entry{Key: k}
			continue
		}
		s, ok := raw[i].(string)
		out[i] = Entry{Key: k, Value: s, OK: ok}
	}
	return out, nil
}

func (r *RedisClient) SetEX(ctx context.Context, key, value string, ttl int) error {
	return r.conn.Set(ctx, key, value, time.Duration(ttl)*time.Second).Err()
}

func (r *RedisClient) MSetEX(ctx context.Context, values map[string]string, ttl int) error {
	if len(values) == 0 {
		return nil
	}
	pipe := r.conn.Pipeline()
	expiry := time.Duration(ttl) * time.Second
	for k, v := range values {
		pipe.Set(ctx, k, v, expiry)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisClient) Exists(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return r.conn.Exists(ctx, keys...).Result()
}

func (r *RedisClient) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return r.conn.Del(ctx, keys...).Result()
}

func (r *RedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	return r.conn.Keys(ctx, pattern).Result()
}

func (r *RedisClient) Ready(ctx context.Context) bool {
	return r.conn.Ping(ctx).Err() == nil
}

func (r *RedisClient) Close() error {
	return r.conn.Close()
}

var _ Client = (*RedisClient)(nil)
