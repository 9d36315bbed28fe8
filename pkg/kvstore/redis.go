package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisStore redis 后端实现
// 信封整体序列化后存入一个 string 键，键统一加前缀便于 Clear
type RedisStore struct {
	client *redis.Client
	prefix string
}

const defaultKeyPrefix = "adhd:"

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: defaultKeyPrefix}
}

func (r *RedisStore) fullKey(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (*Document, error) {
	raw, err := r.client.Get(ctx, r.fullKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document at %s: %w", key, err)
	}
	return &doc, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document at %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.fullKey(key), raw, 0).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, r.prefix+"*").Result()
	if err != nil {
		return errors.WithStack(err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
