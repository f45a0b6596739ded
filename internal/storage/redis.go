package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type RedisStorage struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	prefix      string
}

func NewRedisStorage(redisClient *redis.Client, logger *zap.SugaredLogger, prefix string) *RedisStorage {
	return &RedisStorage{
		RedisClient: redisClient,
		Logger:      logger,
		prefix:      prefix,
	}
}

func (rs *RedisStorage) key(key string) string {
	return rs.prefix + key
}

func (rs *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := rs.RedisClient.Get(ctx, rs.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		rs.Logger.Error(
			"Failed get value from Redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, err
	}

	return value, nil
}

func (rs *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	// без TTL: корзина живёт до явной очистки
	err := rs.RedisClient.Set(ctx, rs.key(key), value, 0).Err()
	if err != nil {
		rs.Logger.Error(
			"Failed save value to Redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return err
	}

	return nil
}

func (rs *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := rs.RedisClient.Del(ctx, rs.key(key)).Err(); err != nil {
		rs.Logger.Error(
			"Failed delete value from Redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return err
	}

	return nil
}
