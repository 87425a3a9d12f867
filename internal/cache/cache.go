package cache

import (
	"github.com/dgraph-io/ristretto"

	"linkshort/internal/domain"
)

// LinkCache keeps recently resolved links keyed by slug. Cached records carry
// only immutable fields that matter for resolution (id, original URL,
// expiration); click counts are never served from here.
type LinkCache struct {
	cache *ristretto.Cache
}

func New(maxSizePow2 int) (*LinkCache, error) {
	maxCost := max(1, int64(1)<<maxSizePow2)
	numCounters := max(1, maxCost/100) // ~100 bytes per entry estimate

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &LinkCache{cache: cache}, nil
}

func (c *LinkCache) Get(slug string) (domain.Link, bool) {
	val, found := c.cache.Get(slug)
	if !found {
		return domain.Link{}, false
	}
	return val.(domain.Link), true
}

func (c *LinkCache) Set(link domain.Link) {
	cost := int64(len(link.Slug) + len(link.OriginalURL))
	c.cache.Set(link.Slug, link, cost)
}

func (c *LinkCache) Del(slug string) {
	c.cache.Del(slug)
}

func (c *LinkCache) Close() {
	c.cache.Close()
}

func (c *LinkCache) Stats() (hits, misses uint64, ratio float64) {
	metrics := c.cache.Metrics
	hits = metrics.Hits()
	misses = metrics.Misses()
	ratio = metrics.Ratio()
	return
}
