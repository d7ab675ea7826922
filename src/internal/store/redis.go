package store

import (
	"context"
	"docbridge-svc/src/internal/models"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// removeIfScript deletes the key only when it still holds the expected
// value. Runs atomically on the Redis server.
var removeIfScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) KeyValue {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to put value in redis")
		return models.ErrRedisSet
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get value from redis")
		return nil, models.ErrRedisGet
	}

	return data, nil
}

func (s *redisStore) TakeOnce(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to take value from redis")
		return nil, models.ErrRedisGet
	}

	return data, nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to remove value from redis")
		return models.ErrRedisDelete
	}

	return nil
}

func (s *redisStore) RemoveIf(ctx context.Context, key string, expected []byte) (bool, error) {
	removed, err := removeIfScript.Run(ctx, s.client, []string{key}, string(expected)).Int()
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to run conditional remove in redis")
		return false, models.ErrRedisDelete
	}

	return removed > 0, nil
}
