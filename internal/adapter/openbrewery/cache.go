package openbrewery

import (
	"context"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/lru"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// CachedSource wraps a RecordSource with an in-memory LRU of brewery details.
// List pages are never cached; a snapshot is fetched once per load.
type CachedSource struct {
	inner   domain.RecordSource
	cache   *lru.Cache[domain.Brewery]
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a record source.
func NewCachedSource(inner domain.RecordSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   lru.New[domain.Brewery](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) FetchPage(ctx context.Context, page, perPage int) ([]domain.Brewery, error) {
	return c.inner.FetchPage(ctx, page, perPage)
}

func (c *CachedSource) FetchByID(ctx context.Context, id string) (domain.Brewery, error) {
	if b, ok := c.cache.Get(id); ok {
		c.metrics.DetailCache.WithLabelValues("hit").Inc()
		return b, nil
	}
	c.metrics.DetailCache.WithLabelValues("miss").Inc()

	b, err := c.inner.FetchByID(ctx, id)
	if err != nil {
		return b, err
	}
	c.cache.Put(id, b)
	return b, nil
}
