package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheVersionKey = "posts:lists:ver"

// ListCache keeps listing results in Redis. The cache is opportunistic: any
// Redis failure degrades to a direct store read. Invalidation bumps a
// namespace version instead of scanning for keys, so stale entries simply
// age out through the TTL.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewListCache constructs a cache. A nil client disables caching entirely.
func NewListCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListCache {
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

// CacheKey renders a stable key for a listing request. Tags and fields are
// sorted so equivalent filters share an entry.
func CacheKey(scope string, filter ListFilter) string {
	tags := append([]string(nil), filter.Tags...)
	sort.Strings(tags)
	fields := append([]string(nil), filter.Fields...)
	sort.Strings(fields)
	direction := "asc"
	if filter.SortDesc {
		direction = "desc"
	}
	return fmt.Sprintf("%s|author=%d|title=%s|tags=%s|sort=%s:%s|page=%d:%d|fields=%s",
		scope, filter.AuthorID, filter.Title, strings.Join(tags, ","),
		filter.SortBy, direction, filter.Page.Page, filter.Page.Limit,
		strings.Join(fields, ","))
}

// GetOrFill returns the cached result for key, or runs fill and stores the
// outcome. Concurrent misses on the same key are collapsed to one fill.
func (c *ListCache) GetOrFill(ctx context.Context, key string, fill func(context.Context) (*ListResult, error)) (*ListResult, error) {
	if c == nil || c.client == nil {
		return fill(ctx)
	}

	full, ok := c.versionedKey(ctx, key)
	if !ok {
		return fill(ctx)
	}

	if data, err := c.client.Get(ctx, full).Bytes(); err == nil {
		var cached ListResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	value, err, _ := c.group.Do(full, func() (any, error) {
		result, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		if data, merr := json.Marshal(result); merr == nil {
			if serr := c.client.Set(ctx, full, data, c.ttl).Err(); serr != nil && c.logger != nil {
				c.logger.Warn("post list cache set", slog.Any("error", serr))
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*ListResult), nil
}

// Invalidate bumps the namespace version so every cached listing misses.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, cacheVersionKey).Err(); err != nil && c.logger != nil {
		c.logger.Warn("post list cache invalidate", slog.Any("error", err))
	}
}

func (c *ListCache) versionedKey(ctx context.Context, key string) (string, bool) {
	version, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		if c.logger != nil {
			c.logger.Warn("post list cache version", slog.Any("error", err))
		}
		return "", false
	}
	return fmt.Sprintf("posts:lists:%d:%s", version, key), true
}
