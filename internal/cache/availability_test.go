package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/cache"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

var snapshot = []model.TierAvailability{
	{TierID: "ga", Name: "General", Remaining: 100, Held: 4, Available: 96},
	{TierID: "vip", Name: "VIP", Remaining: 10, Held: 0, Available: 10},
}

func TestRedisAvailabilityCache_Get(t *testing.T) {
	ctx := context.Background()
	key := cache.AvailabilityKey("evt-1")

	t.Run("Miss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()

		got, ok, err := cache.NewRedisAvailabilityCache(db, time.Second).Get(ctx, "evt-1")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Hit", func(t *testing.T) {
		raw, err := json.Marshal(snapshot)
		require.NoError(t, err)

		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal(string(raw))

		got, ok, err := cache.NewRedisAvailabilityCache(db, time.Second).Get(ctx, "evt-1")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, snapshot, got)
	})

	t.Run("Corrupt value", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal("{not json")

		_, _, err := cache.NewRedisAvailabilityCache(db, time.Second).Get(ctx, "evt-1")

		assert.ErrorContains(t, err, "decode availability")
	})

	t.Run("Redis failure", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetErr(errors.New("timeout"))

		_, ok, err := cache.NewRedisAvailabilityCache(db, time.Second).Get(ctx, "evt-1")

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRedisAvailabilityCache_Writes(t *testing.T) {
	ctx := context.Background()
	key := cache.AvailabilityKey("evt-1")
	ttl := 5 * time.Second

	t.Run("Set stores JSON with TTL", func(t *testing.T) {
		raw, err := json.Marshal(snapshot)
		require.NoError(t, err)

		db, mock := redismock.NewClientMock()
		mock.ExpectSet(key, string(raw), ttl).SetVal("OK")

		require.NoError(t, cache.NewRedisAvailabilityCache(db, ttl).Set(ctx, "evt-1", snapshot))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AdjustHeld runs the script", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectEval(cache.AdjustHeldScript, []string{key}, "ga", -2).SetVal(int64(1))

		require.NoError(t, cache.NewRedisAvailabilityCache(db, ttl).AdjustHeld(ctx, "evt-1", "ga", -2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AdjustHeld with zero delta is a no-op", func(t *testing.T) {
		db, mock := redismock.NewClientMock()

		require.NoError(t, cache.NewRedisAvailabilityCache(db, ttl).AdjustHeld(ctx, "evt-1", "ga", 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalidate deletes the key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectDel(key).SetVal(1)

		require.NoError(t, cache.NewRedisAvailabilityCache(db, ttl).Invalidate(ctx, "evt-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
