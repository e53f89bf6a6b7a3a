package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps session records in Redis with a sliding TTL. Destruction
// is a DEL, so it is terminal and immediate across all API instances.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: validTTL(ttl)}
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	id, err := NewID()
	if err != nil {
		return "", err
	}
	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.client.Set(ctx, redisKeyPrefix+id, value, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (uint, error) {
	if id == "" {
		return NoUser, nil
	}
	value, err := s.client.GetEx(ctx, redisKeyPrefix+id, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return NoUser, nil
	}
	if err != nil {
		return NoUser, fmt.Errorf("load session: %w", err)
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return NoUser, fmt.Errorf("parse session value: %w", err)
	}
	return uint(userID), nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
