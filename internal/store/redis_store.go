package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func locationKey(sessionID string) string { return "bridge:location:" + sessionID }
func unloadKey(sessionID string) string   { return "bridge:unload:" + sessionID }

func (r *RedisStore) SetLocation(ctx context.Context, sessionID, href string, ttl time.Duration) error {
	return r.client.Set(ctx, locationKey(sessionID), href, ttl).Err()
}

func (r *RedisStore) GetLocation(ctx context.Context, sessionID string) (string, error) {
	result, err := r.client.Get(ctx, locationKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return result, err
}

func (r *RedisStore) SetUnloadInitialized(ctx context.Context, sessionID string, initialized bool, ttl time.Duration) error {
	v := "0"
	if initialized {
		v = "1"
	}
	return r.client.Set(ctx, unloadKey(sessionID), v, ttl).Err()
}

func (r *RedisStore) UnloadInitialized(ctx context.Context, sessionID string) (bool, error) {
	result, err := r.client.Get(ctx, unloadKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result == "1", nil
}

func (r *RedisStore) Forget(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, locationKey(sessionID), unloadKey(sessionID)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
