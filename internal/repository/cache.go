// internal/repository/cache.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// Cached puts a Redis read-through cache in front of another repository.
// Cache errors are logged and fall through to the backing store. A key whose
// entry could not be replaced after a write is read from the backing store
// until Redis accepts the new value.
type Cached[T models.Record] struct {
	next   Repository[T]
	redis  redis.Cmdable
	name   string
	ttl    time.Duration
	logger logger.Logger

	stale sync.Map
}

func NewCached[T models.Record](next Repository[T], rdb redis.Cmdable, name string, ttl time.Duration, log logger.Logger) *Cached[T] {
	return &Cached[T]{
		next:   next,
		redis:  rdb,
		name:   name,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cache": name}),
	}
}

func (c *Cached[T]) key(organizationID, id string) string {
	return fmt.Sprintf("%s:%s:%s", c.name, organizationID, id)
}

func (c *Cached[T]) Get(ctx context.Context, organizationID, id string) (T, error) {
	key := c.key(organizationID, id)

	if _, stale := c.stale.Load(key); stale {
		metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()
		return c.load(ctx, organizationID, id)
	}

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec T
		if jerr := json.Unmarshal(raw, &rec); jerr == nil {
			metrics.CacheLookups.WithLabelValues(c.name, "hit").Inc()
			return rec, nil
		}
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key})
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
	}
	metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()

	return c.load(ctx, organizationID, id)
}

func (c *Cached[T]) load(ctx context.Context, organizationID, id string) (T, error) {
	rec, err := c.next.Get(ctx, organizationID, id)
	if err != nil {
		return rec, err
	}
	c.store(ctx, rec)
	return rec, nil
}

// Put evicts the cached entry before writing through, so a failed refresh
// never leaves the previous version readable.
func (c *Cached[T]) Put(ctx context.Context, record T) error {
	key := c.key(record.GetOrganizationID(), record.GetID())
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.stale.Store(key, struct{}{})
		c.logger.Warn("cache evict failed", map[string]interface{}{"key": key, "error": err})
	}

	if err := c.next.Put(ctx, record); err != nil {
		return err
	}
	c.store(ctx, record)
	return nil
}

func (c *Cached[T]) Query(ctx context.Context, filter Filter) ([]T, error) {
	return c.next.Query(ctx, filter)
}

func (c *Cached[T]) store(ctx context.Context, record T) {
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	key := c.key(record.GetOrganizationID(), record.GetID())
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.stale.Store(key, struct{}{})
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
		return
	}
	c.stale.Delete(key)
}
