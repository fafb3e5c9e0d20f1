package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache stores fetched collections next to a generation counter.
// Keys: <key>:gen holds the latest generation, <key>:data the payload.
type ListCache struct {
	client *redis.Client
}

func NewListCache(client *redis.Client) *ListCache {
	return &ListCache{client: client}
}

// commitScript writes ARGV[2] only while KEYS[1] still holds generation
// ARGV[1].
var commitScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[1])
if gen == false or gen ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

func genKey(key string) string  { return key + ":gen" }
func dataKey(key string) string { return key + ":data" }

func (c *ListCache) Begin(ctx context.Context, key string) (int64, error) {
	gen, err := c.client.Incr(ctx, genKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("list cache begin %s: %w", key, err)
	}
	return gen, nil
}

func (c *ListCache) Commit(ctx context.Context, key string, gen int64, payload []byte, ttl time.Duration) (bool, error) {
	n, err := commitScript.Run(ctx, c.client,
		[]string{genKey(key), dataKey(key)},
		gen, payload, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("list cache commit %s: %w", key, err)
	}
	return n == 1, nil
}

func (c *ListCache) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("list cache load %s: %w", key, err)
	}
	return raw, true, nil
}

// Invalidate drops the payloads of keys. Generations are kept so that a
// fetch in flight still cannot commit behind a newer one.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	data := make([]string, len(keys))
	for i, k := range keys {
		data[i] = dataKey(k)
	}
	if err := c.client.Del(ctx, data...).Err(); err != nil {
		return fmt.Errorf("list cache invalidate: %w", err)
	}
	return nil
}
