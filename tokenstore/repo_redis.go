package tokenstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisRepo stores session fields in Redis so a session can be shared by
// several client processes (e.g., a pool of workers acting as one operator).
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed token repository. The prefix
// namespaces the session keys (e.g., one prefix per operator account).
func NewRedisRepo(client *redis.Client, prefix string) (*RedisRepo, error) {
	if client == nil {
		return nil, errors.New("[NewRedisRepo] client is required")
	}
	return &RedisRepo{client: client, prefix: prefix}, nil
}

var _ Repo = (*RedisRepo)(nil)

func (r *RedisRepo) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "[RedisRepo.Get]")
	}
	return value, nil
}

func (r *RedisRepo) SetAll(ctx context.Context, entries map[string]string) error {
	pipe := r.client.TxPipeline()
	for key, value := range entries {
		pipe.Set(ctx, r.key(key), value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "[RedisRepo.SetAll]")
	}
	return nil
}

func (r *RedisRepo) DeleteAll(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, r.key(key))
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return errors.Wrap(err, "[RedisRepo.DeleteAll]")
	}
	return nil
}

func (r *RedisRepo) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}
