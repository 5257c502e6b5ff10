package kv

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
)

// Redis is a Store backed by plain Redis string keys. All keys are
// namespaced with a prefix so several profiles can share one server.
type Redis struct {
	client *redis.Client
	prefix string
	owned  bool
}

var _ Store = (*Redis)(nil)

// NewRedis wraps an existing client. The caller keeps ownership of the
// client; Close does not close it.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// NewRedisFromURL connects to the server at url and checks it with PING.
func NewRedisFromURL(ctx context.Context, url, prefix string) (*Redis, error) {
	if url == "" {
		return nil, errors.NewConfigError("store", "redis backend requires a url", nil)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("store", "invalid redis url", err)
	}
	opts.DialTimeout = constants.DefaultStoreTimeout
	opts.ReadTimeout = constants.DefaultStoreTimeout
	opts.WriteTimeout = constants.DefaultStoreTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapResource("connect", "store", "redis", err)
	}
	return &Redis{client: client, prefix: prefix, owned: true}, nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errors.WrapIO("read", r.key(key), err)
	}
	return v, true, nil
}

// Set implements Store. Keys never expire.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.WrapIO("write", r.key(key), err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.WrapIO("delete", r.key(key), err)
	}
	return nil
}

// Close implements Store.
func (r *Redis) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}
