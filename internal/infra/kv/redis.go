package kv

import (
	"context"
	"time"

	"prize-wheel/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	Namespace string
}

type RedisStore struct {
	client    redis.UniversalClient
	namespace string
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}

	return NewRedisStoreWithClient(client, cfg.Namespace), nil
}

func NewRedisStoreWithClient(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) key(k string) string {
	return "promotions:" + s.namespace + ":" + k
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}

	values, err := s.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, errs.Wrap(err, "redis mget")
	}

	out := make(map[string]string, len(keys))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
		case string:
			out[keys[i]] = val
		default:
			return nil, errs.Newf("unexpected redis value type %T for key %s", v, keys[i])
		}
	}
	return out, nil
}

// SetMany wraps the writes in MULTI/EXEC.
func (s *RedisStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(err, "redis transaction")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return errs.Wrap(err, "redis del")
	}
	return nil
}

func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}
