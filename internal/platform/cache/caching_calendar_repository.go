// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tickrtime/internal/feature/earnings/domain/entity"
	"tickrtime/internal/feature/earnings/usecase"
)

// CachingCalendarRepository decorates a CalendarRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Keys are per month-bounded sub-range,
// so concurrent sub-fetches for a wide request each hit their own entry.
type CachingCalendarRepository struct {
	inner     usecase.CalendarRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CalendarRepository = (*CachingCalendarRepository)(nil)

// NewCachingCalendarRepository decorates a CalendarRepository with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "earnings".
func NewCachingCalendarRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CalendarRepository, namespace string) *CachingCalendarRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "earnings"
	}
	return &CachingCalendarRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchCalendar retrieves calendar records, checking cache first then falling
// back to the upstream provider. Upstream errors are never cached.
func (c *CachingCalendarRepository) FetchCalendar(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchCalendar(ctx, from, to)
	}

	key := c.cacheKey(from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.EarningsRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to upstream
	out, err := c.inner.FetchCalendar(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific sub-range query.
func (c *CachingCalendarRepository) cacheKey(from, to string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(from), safe(to))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
