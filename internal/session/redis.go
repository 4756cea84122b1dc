package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL, so logins survive
// server restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis instance described by url, e.g.
// "redis://localhost:6379".
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Create(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
