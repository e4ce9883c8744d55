package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

// AvailabilityCache holds short-lived per-event availability snapshots. The
// numbers are advisory; confirmation and claim transactions re-check the store.
type AvailabilityCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, eventID string) ([]model.TierAvailability, bool, error)
	Set(ctx context.Context, eventID string, snapshot []model.TierAvailability) error
	// AdjustHeld shifts a tier's held count in place; it is a no-op on a miss.
	AdjustHeld(ctx context.Context, eventID, tierID string, delta int) error
	Invalidate(ctx context.Context, eventID string) error
}

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) AvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func AvailabilityKey(eventID string) string {
	return fmt.Sprintf("event:%s:availability", eventID)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, eventID string) ([]model.TierAvailability, bool, error) {
	raw, err := c.client.Get(ctx, AvailabilityKey(eventID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snapshot []model.TierAvailability
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode availability: %w", err)
	}
	return snapshot, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, eventID string, snapshot []model.TierAvailability) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, AvailabilityKey(eventID), string(raw), c.ttl).Err()
}

// AdjustHeldScript rewrites the snapshot atomically and keeps its remaining TTL.
const AdjustHeldScript = `
local raw = redis.call('GET', KEYS[1])
if not raw then
	return 0
end

local snapshot = cjson.decode(raw)
local delta = tonumber(ARGV[2])
for _, tier in ipairs(snapshot) do
	if tier.tier_id == ARGV[1] then
		tier.held = math.max(tier.held + delta, 0)
		tier.available = math.max(tier.remaining - tier.held, 0)
	end
end

local ttl = redis.call('PTTL', KEYS[1])
if ttl > 0 then
	redis.call('SET', KEYS[1], cjson.encode(snapshot), 'PX', ttl)
end
return 1
`

func (c *RedisAvailabilityCache) AdjustHeld(ctx context.Context, eventID, tierID string, delta int) error {
	if delta == 0 {
		return nil
	}
	return c.client.Eval(ctx, AdjustHeldScript, []string{AvailabilityKey(eventID)}, tierID, delta).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, eventID string) error {
	return c.client.Del(ctx, AvailabilityKey(eventID)).Err()
}
