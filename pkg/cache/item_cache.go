package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultItemTTL applies when NewItemCache is given a non-positive TTL.
const DefaultItemTTL = 24 * time.Hour

const itemKeyPrefix = "item"

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// CachedItem is the read model stored as a Redis hash under "item:{id}".
type CachedItem struct {
	ID          int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemCache reads and writes item hashes.
//
// Writes are ordered by the item's updated_at: Set never replaces a newer
// entry, and Delete leaves a tombstone that Set will not overwrite. A reader
// that loaded a row before a concurrent delete or update therefore cannot
// put the stale version back.
type ItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewItemCache returns an ItemCache backed by r whose entries expire after ttl.
func NewItemCache(r *RedisClient, ttl time.Duration) *ItemCache {
	if ttl <= 0 {
		ttl = DefaultItemTTL
	}
	return &ItemCache{client: r.Client(), ttl: ttl}
}

const (
	fieldVersion = "version"
	fieldDeleted = "deleted"
)

// KEYS[1] item key; ARGV[1] ttl in ms; ARGV[2] version; ARGV[3..] field/value pairs.
var setIfNewer = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'deleted') == '1' then
	return 0
end
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) > tonumber(ARGV[2]) then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], unpack(ARGV, 3))
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return 1
`)

// Get returns the cached item or ErrMiss. A tombstone reads as a miss.
func (c *ItemCache) Get(ctx context.Context, id int64) (*CachedItem, error) {
	vals, err := c.client.HGetAll(ctx, ItemKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 || vals[fieldDeleted] == "1" {
		return nil, ErrMiss
	}
	return decodeItem(vals)
}

// Set writes item and refreshes its TTL unless the key holds a tombstone or
// a version newer than item.UpdatedAt. A skipped write is not an error.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	args := []any{c.ttl.Milliseconds(), version(item.UpdatedAt)}
	for _, kv := range encodeItem(item) {
		args = append(args, kv[0], kv[1])
	}
	if err := setIfNewer.Run(ctx, c.client, []string{ItemKey(item.ID)}, args...).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete replaces the entry with a tombstone that lives for the cache TTL.
// Deleting a missing key is not an error.
func (c *ItemCache) Delete(ctx context.Context, id int64) error {
	key := ItemKey(id)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fieldDeleted, "1")
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// version orders writes. Postgres keeps microseconds, so finer digits are dropped.
func version(t time.Time) int64 {
	return t.UnixMicro()
}

// ItemKey builds the Redis key "item:{id}".
func ItemKey(id int64) string {
	return itemKeyPrefix + ":" + strconv.FormatInt(id, 10)
}

func encodeItem(item *CachedItem) [][2]string {
	return [][2]string{
		{"id", strconv.FormatInt(item.ID, 10)},
		{"name", item.Name},
		{"description", item.Description},
		{"unit_price", item.UnitPrice.String()},
		{"merchant_id", strconv.FormatInt(item.MerchantID, 10)},
		{"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano)},
		{"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano)},
		{fieldVersion, strconv.FormatInt(version(item.UpdatedAt), 10)},
	}
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	merchantID, err := strconv.ParseInt(vals["merchant_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse merchant_id: %w", err)
	}
	price, err := decimal.NewFromString(vals["unit_price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse unit_price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return &CachedItem{
		ID:          id,
		Name:        vals["name"],
		Description: vals["description"],
		UnitPrice:   price,
		MerchantID:  merchantID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
