package holiday

import (
	"sync"
	"time"

	"github.com/username/class-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

// Cache memoizes lookups of the wrapped resolver for one generation run.
// Failed lookups are not cached.
type Cache struct {
	resolver Resolver
	logger   *zap.Logger
	cache    map[string]Lookup
	cacheMu  sync.RWMutex
}

// NewCache wraps resolver with a fresh cache
func NewCache(resolver Resolver, logger *zap.Logger) *Cache {
	return &Cache{
		resolver: resolver,
		logger:   logger,
		cache:    make(map[string]Lookup),
	}
}

// Resolve returns the cached lookup for date or asks the wrapped resolver
func (c *Cache) Resolve(date time.Time) (Lookup, error) {
	cacheKey := dateutil.FormatDate(date)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		c.logger.Debug("Using cached holiday lookup", zap.String("date", cacheKey))
		return cached, nil
	}
	c.cacheMu.RUnlock()

	lookup, err := c.resolver.Resolve(date)
	if err != nil {
		return lookup, err
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = lookup
	c.cacheMu.Unlock()

	return lookup, nil
}

// ClearCache clears the cache
func (c *Cache) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]Lookup)
	c.logger.Debug("Holiday cache cleared")
}
