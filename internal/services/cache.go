package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"macromatch-go-api/internal/config"
	"macromatch-go-api/internal/metrics"
	"macromatch-go-api/internal/models"
	"macromatch-go-api/pkg/logger"
)

const (
	collectionTickers    = "tickers"
	collectionIndicators = "indicators"
	latestIndicatorsKey  = "latest"

	layerMemory = "memory"
)

// Generic in-memory cache with type safety
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*cacheItem[V]
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
		done:  make(chan struct{}),
	}

	go c.cleanup(5 * time.Minute)

	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		var zero V
		return zero, false
	}

	return item.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.SetUntil(key, value, time.Now().Add(c.ttl))
}

// SetUntil stores value with an explicit expiry, used when a remote layer
// already knows how old the entry is.
func (c *Cache[K, V]) SetUntil(key K, value V, expiration time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: expiration,
	}
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*cacheItem[V])
}

// Close stops the janitor goroutine.
func (c *Cache[K, V]) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache[K, V]) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *Cache[K, V]) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}

// remoteStore is a shared second-level cache. Entries carry the time they
// were written so readers can apply their own TTL.
type remoteStore interface {
	Name() string
	Get(ctx context.Context, collection, key string) (payload []byte, storedAt time.Time, err error)
	Set(ctx context.Context, collection, key string, payload []byte, ttl time.Duration) error
	Flush(ctx context.Context, collections ...string) error
	Close() error
}

var errCacheMiss = errors.New("cache miss")

// CacheService fronts the remote stores with typed in-memory caches.
type CacheService struct {
	log            *logger.Logger
	remotes        []remoteStore
	quoteTTL       time.Duration
	indicatorTTL   time.Duration
	tickerCache    *Cache[string, *models.TickerData]
	indicatorCache *Cache[string, *models.IndicatorSnapshot]
}

// NewCacheService connects the configured remote stores. A store that
// fails to connect is logged and skipped; the service then runs with the
// remaining layers.
func NewCacheService(ctx context.Context, cfg *config.Config, log *logger.Logger) *CacheService {
	var remotes []remoteStore

	if cfg.Cache.Redis.Enabled {
		store, err := newRedisStore(ctx, cfg.Cache.Redis)
		if err != nil {
			log.Warn("redis cache unavailable, continuing without it", logger.Error(err))
		} else {
			remotes = append(remotes, store)
		}
	}

	if cfg.Cache.Firestore.Enabled {
		store, err := newFirestoreStore(ctx, cfg.Cache.Firestore)
		if err != nil {
			log.Warn("firestore cache unavailable, continuing without it", logger.Error(err))
		} else {
			remotes = append(remotes, store)
		}
	}

	return newCacheService(cfg.Cache.QuoteTTL, cfg.Cache.IndicatorTTL, log, remotes...)
}

func newCacheService(quoteTTL, indicatorTTL time.Duration, log *logger.Logger, remotes ...remoteStore) *CacheService {
	return &CacheService{
		log:            log,
		remotes:        remotes,
		quoteTTL:       quoteTTL,
		indicatorTTL:   indicatorTTL,
		tickerCache:    NewCache[string, *models.TickerData](quoteTTL),
		indicatorCache: NewCache[string, *models.IndicatorSnapshot](indicatorTTL),
	}
}

// Layers names the active cache layers, memory first.
func (s *CacheService) Layers() []string {
	out := []string{layerMemory}
	for _, r := range s.remotes {
		out = append(out, r.Name())
	}
	return out
}

// lookup walks memory then each remote store. A remote hit is promoted to
// memory for the rest of its lifetime.
func lookup[V any](ctx context.Context, s *CacheService, mem *Cache[string, *V], collection, key string, ttl time.Duration) (*V, bool) {
	if v, ok := mem.Get(key); ok {
		metrics.CacheHit(layerMemory)
		return v, true
	}
	metrics.CacheMiss(layerMemory)

	for _, r := range s.remotes {
		payload, storedAt, err := r.Get(ctx, collection, key)
		if err != nil {
			if !errors.Is(err, errCacheMiss) {
				s.log.Warn("cache read failed",
					logger.String("layer", r.Name()), logger.String("key", collection+"/"+key), logger.Error(err))
			}
			metrics.CacheMiss(r.Name())
			continue
		}
		expires := storedAt.Add(ttl)
		if time.Now().After(expires) {
			metrics.CacheMiss(r.Name())
			continue
		}

		var v V
		if err := json.Unmarshal(payload, &v); err != nil {
			s.log.Warn("cache payload undecodable", logger.String("layer", r.Name()), logger.Error(err))
			continue
		}
		metrics.CacheHit(r.Name())
		mem.SetUntil(key, &v, expires)
		return &v, true
	}
	return nil, false
}

func store[V any](ctx context.Context, s *CacheService, mem *Cache[string, *V], collection, key string, v *V, ttl time.Duration) error {
	mem.Set(key, v)
	if len(s.remotes) == 0 {
		return nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var errs []error
	for _, r := range s.remotes {
		if err := r.Set(ctx, collection, key, payload, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetTickerData retrieves ticker data from cache
func (s *CacheService) GetTickerData(ctx context.Context, symbol string) (*models.TickerData, bool) {
	return lookup(ctx, s, s.tickerCache, collectionTickers, symbol, s.quoteTTL)
}

// SetTickerData stores ticker data in every layer
func (s *CacheService) SetTickerData(ctx context.Context, symbol string, data *models.TickerData) error {
	return store(ctx, s, s.tickerCache, collectionTickers, symbol, data, s.quoteTTL)
}

func (s *CacheService) GetIndicators(ctx context.Context) (*models.IndicatorSnapshot, bool) {
	return lookup(ctx, s, s.indicatorCache, collectionIndicators, latestIndicatorsKey, s.indicatorTTL)
}

func (s *CacheService) SetIndicators(ctx context.Context, snap *models.IndicatorSnapshot) error {
	return store(ctx, s, s.indicatorCache, collectionIndicators, latestIndicatorsKey, snap, s.indicatorTTL)
}

// Flush empties every layer.
func (s *CacheService) Flush(ctx context.Context) error {
	s.tickerCache.Flush()
	s.indicatorCache.Flush()

	var errs []error
	for _, r := range s.remotes {
		if err := r.Flush(ctx, collectionTickers, collectionIndicators); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close stops the janitors and closes the remote clients
func (s *CacheService) Close() error {
	s.tickerCache.Close()
	s.indicatorCache.Close()

	var errs []error
	for _, r := range s.remotes {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
