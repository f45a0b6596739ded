package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setupRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()

	return NewRedisStorage(rdb, logger, "storefront:"), mr
}

func TestRedisStorage_SetGet(t *testing.T) {
	rs, mr := setupRedisStorage(t)
	defer mr.Close()
	ctx := context.Background()

	err := rs.Set(ctx, "cart", []byte(`[{"product_id":"product_1"}]`))
	assert.NoError(t, err)

	// ключ хранится с префиксом и без TTL
	raw, err := mr.Get("storefront:cart")
	assert.NoError(t, err)
	assert.Equal(t, `[{"product_id":"product_1"}]`, raw)
	assert.Equal(t, int64(0), int64(mr.TTL("storefront:cart")))

	value, err := rs.Get(ctx, "cart")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[{"product_id":"product_1"}]`), value)

	assert.NoError(t, rs.Set(ctx, "cart", []byte(`[]`)))
	value, err = rs.Get(ctx, "cart")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestRedisStorage_GetMissing(t *testing.T) {
	rs, mr := setupRedisStorage(t)
	defer mr.Close()

	_, err := rs.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage_Delete(t *testing.T) {
	rs, mr := setupRedisStorage(t)
	defer mr.Close()
	ctx := context.Background()

	assert.NoError(t, rs.Set(ctx, "lastOrderInfo", []byte(`{}`)))
	assert.NoError(t, rs.Delete(ctx, "lastOrderInfo"))
	assert.False(t, mr.Exists("storefront:lastOrderInfo"))

	// удаление отсутствующего ключа не ошибка
	assert.NoError(t, rs.Delete(ctx, "lastOrderInfo"))
}

func TestRedisStorage_ConnectionError(t *testing.T) {
	rs, mr := setupRedisStorage(t)
	mr.Close()
	ctx := context.Background()

	_, err := rs.Get(ctx, "cart")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Error(t, rs.Set(ctx, "cart", []byte(`[]`)))
}
