package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"

	"trailmap/internal/metrics"
)

// Cache is the byte-level cache the search read path sits behind. Both the
// redis client and the in-process fallback satisfy it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Del(ctx context.Context, key string)
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis get error: %v", err)
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Redis set error: %v", err)
	}
}

func (c *RedisCache) Del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("Redis del error: %v", err)
	}
}

// CachedSearchRepository is a read-through decorator. Both the by-id entry
// and every cached bounding-box result are dropped on upsert so an edit is
// visible on the next read.
type CachedSearchRepository struct {
	inner SearchRepository
	cache Cache
	ttl   time.Duration

	mu       sync.Mutex
	bboxKeys map[string]struct{}
}

func NewCachedSearchRepository(inner SearchRepository, cache Cache, ttl time.Duration) *CachedSearchRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedSearchRepository{
		inner:    inner,
		cache:    cache,
		ttl:      ttl,
		bboxKeys: make(map[string]struct{}),
	}
}

func (r *CachedSearchRepository) QueryByBoundingBox(ctx context.Context, neLat, neLng, swLat, swLng float64, categories []string) ([]*geojson.Feature, error) {
	key := fmt.Sprintf("bbox:%.6f:%.6f:%.6f:%.6f:%s", neLat, neLng, swLat, swLng, strings.Join(categories, ","))
	if cached, ok := r.cache.Get(ctx, key); ok {
		var features []*geojson.Feature
		if err := json.Unmarshal(cached, &features); err == nil {
			metrics.CacheHitsTotal.Inc()
			return features, nil
		}
		r.cache.Del(ctx, key)
	}
	metrics.CacheMissesTotal.Inc()

	features, err := r.inner.QueryByBoundingBox(ctx, neLat, neLng, swLat, swLng, categories)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(features); err == nil {
		r.cache.Set(ctx, key, encoded, r.ttl)
		r.mu.Lock()
		r.bboxKeys[key] = struct{}{}
		r.mu.Unlock()
	}
	return features, nil
}

func (r *CachedSearchRepository) GetByID(ctx context.Context, id, source string) (*geojson.Feature, error) {
	key := featureKey(id, source)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if f, err := geojson.UnmarshalFeature(cached); err == nil {
			metrics.CacheHitsTotal.Inc()
			return f, nil
		}
		r.cache.Del(ctx, key)
	}
	metrics.CacheMissesTotal.Inc()

	f, err := r.inner.GetByID(ctx, id, source)
	if err != nil || f == nil {
		return f, err
	}
	if encoded, err := f.MarshalJSON(); err == nil {
		r.cache.Set(ctx, key, encoded, r.ttl)
	}
	return f, nil
}

func (r *CachedSearchRepository) Upsert(ctx context.Context, feature *geojson.Feature) error {
	if err := r.inner.Upsert(ctx, feature); err != nil {
		return err
	}
	id, _ := feature.Properties["identifier"].(string)
	source, _ := feature.Properties["source"].(string)
	r.cache.Del(ctx, featureKey(id, source))

	// Any cached bounding-box result may contain the stale feature.
	r.mu.Lock()
	keys := r.bboxKeys
	r.bboxKeys = make(map[string]struct{})
	r.mu.Unlock()
	for key := range keys {
		r.cache.Del(ctx, key)
	}
	return nil
}

func featureKey(id, source string) string {
	return "feature:" + source + ":" + id
}
