package storage

import (
	"context"
	"errors"

	"github.com/angelmondragon/foodcart/pkg/redis"
)

// RedisBackend stores each record under fc:session:<id>:<key>.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Session(sessionID string) Store {
	return &redisStore{client: b.client, sessionID: sessionID}
}

func (b *RedisBackend) Ping(ctx context.Context) error { return b.client.Ping(ctx) }

func (b *RedisBackend) Close() error { return b.client.Close() }

type redisStore struct {
	client    *redis.Client
	sessionID string
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.client.SessionKey(s.sessionID, key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(val), true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.client.SessionKey(s.sessionID, key), value, 0)
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.SessionKey(s.sessionID, key))
}
