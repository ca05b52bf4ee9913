// Package statscache caches dashboard report statistics in redis.
package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// DefaultKey is the redis key holding the encoded statistics.
const DefaultKey = "stats:reports"

// GenerationKey holds a counter bumped by every Invalidate.
const GenerationKey = DefaultKey + ":gen"

// setIfCurrent writes KEYS[1] only while KEYS[2] still equals ARGV[1].
// A missing counter reads as generation 0.
var setIfCurrent = goredis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// Cache stores a single ReportStats value with a TTL. Writes carry the
// generation observed on read, so a value computed before an Invalidate
// is never stored after it.
type Cache struct {
	rdb    goredis.Cmdable
	key    string
	genKey string
	ttl    time.Duration
}

// New creates a cache over rdb. Entries expire after ttl.
func New(rdb goredis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, key: DefaultKey, genKey: GenerationKey, ttl: ttl}
}

type entry struct {
	Total       int                          `json:"total"`
	ByType      map[domain.PollutionType]int `json:"byType"`
	GeneratedAt time.Time                    `json:"generatedAt"`
}

// Get returns the cached statistics and the current generation. A miss
// returns nil stats with the generation to pass to Set.
func (c *Cache) Get(ctx context.Context) (*domain.ReportStats, int64, error) {
	pipe := c.rdb.TxPipeline()
	dataCmd := pipe.Get(ctx, c.key)
	genCmd := pipe.Get(ctx, c.genKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
		return nil, 0, fmt.Errorf("statscache get: %w", err)
	}

	gen, err := genCmd.Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return nil, 0, fmt.Errorf("statscache generation: %w", err)
	}

	raw, err := dataCmd.Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("statscache get: %w", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, gen, fmt.Errorf("statscache decode: %w", err)
	}

	return &domain.ReportStats{Total: e.Total, ByType: e.ByType, GeneratedAt: e.GeneratedAt}, gen, nil
}

// Set stores stats if no Invalidate happened since gen was read. A stale
// write is dropped silently.
func (c *Cache) Set(ctx context.Context, gen int64, stats *domain.ReportStats) error {
	raw, err := json.Marshal(entry{Total: stats.Total, ByType: stats.ByType, GeneratedAt: stats.GeneratedAt})
	if err != nil {
		return fmt.Errorf("statscache encode: %w", err)
	}
	err = setIfCurrent.Run(ctx, c.rdb,
		[]string{c.key, c.genKey},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("statscache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached value and advances the generation.
func (c *Cache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("statscache invalidate: %w", err)
	}
	return nil
}
