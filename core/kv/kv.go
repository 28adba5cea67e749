package kv

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chatops.app/courier/core/config"
)

// KV wraps the Redis client that backs the directory and conversation stores.
// It is the single owned handle to the shared store: callers receive it by
// injection and must Close it when done, there is no package-level connection.
type KV struct {
	client    *redis.Client
	keyPrefix string
}

// New connects to the store and verifies the connection with a ping.
func New(ctx context.Context, cfg config.RedisConfig) (*KV, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &KV{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

func (kv *KV) Client() *redis.Client {
	return kv.client
}

// Key builds a namespaced store key from the configured prefix.
func (kv *KV) Key(parts ...string) string {
	key := kv.keyPrefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (kv *KV) Ping(ctx context.Context) error {
	return kv.client.Ping(ctx).Err()
}

// SampleKeys returns up to n keys under the configured prefix. Used by the
// health probe to show that the store actually holds data.
func (kv *KV) SampleKeys(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	keys, _, err := kv.client.Scan(ctx, 0, kv.keyPrefix+":*", int64(n)).Result()
	if err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys, nil
}

func (kv *KV) Close() error {
	return kv.client.Close()
}
