package openweather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	"github.com/couchcryptid/beach-safety-advisor/internal/observability"
)

// Store is a TTL'd byte cache for raw observation payloads. Implementations:
// the in-process MemoryStore here and the Redis store in rediscache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// CachedSource wraps an ObservationSource with a freshness-bounded cache so
// repeated requests for the same beach within the TTL reuse one upstream
// fetch. Cache failures degrade to a direct fetch, never to a request error.
type CachedSource struct {
	inner   domain.ObservationSource
	store   Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewCachedSource creates a cache decorator around an observation source.
func NewCachedSource(inner domain.ObservationSource, store Store, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *CachedSource) CurrentConditions(ctx context.Context, lat, lon float64) ([]byte, error) {
	key := cacheKey(lat, lon)

	payload, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("observation cache get failed", "key", key, "error", err)
	case ok:
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return payload, nil
	default:
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	payload, err = c.inner.CurrentConditions(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.Warn("observation cache set failed", "key", key, "error", err)
	}
	return payload, nil
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("wx:%.4f,%.4f", lat, lon)
}
