package stats

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type (
	// Cache memoizes per-column contexts across filter passes. Builds
	// for the same column and dataset version are deduplicated, so N
	// concurrent passes over an unchanged column pay for one scan.
	// Bumping the version is how callers signal that the underlying
	// column dataset changed.
	Cache struct {
		locker sync.RWMutex
		items  map[string]*Context

		buildGroup singleflight.Group
	}
)

func NewCache() *Cache {
	return &Cache{
		items: map[string]*Context{},
	}
}

func cacheKey(column string, version uint64) string {
	return fmt.Sprintf("%s@%d", column, version)
}

// Get returns the context for column at the given dataset version,
// building it from the values supplier on a miss. The supplier is only
// consulted by the single build winner.
func (c *Cache) Get(ctx context.Context, column string, version uint64, values func() []any) (*Context, error) {
	key := cacheKey(column, version)

	c.locker.RLock()
	cached := c.items[key]
	c.locker.RUnlock()

	if cached != nil {
		return cached, nil
	}

	v, err, _ := c.buildGroup.Do(key, func() (any, error) {
		buildStart := time.Now()

		built, buildErr := Build(ctx, values())
		if buildErr != nil {
			return nil, buildErr
		}

		took := time.Since(buildStart).Seconds() * 1000
		if took > 10 {
			slog.Info("slow column context build", "column", column, "took", took)
		}

		c.locker.Lock()
		c.items[key] = built
		c.locker.Unlock()

		return built, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to build context for column `%s` : %w", column, err)
	}

	return v.(*Context), nil
}

// Invalidate drops every cached version of a column.
func (c *Cache) Invalidate(column string) {
	prefix := column + "@"

	c.locker.Lock()
	defer c.locker.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}
