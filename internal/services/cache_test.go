package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/pkg/logger"
)

type remoteEntry struct {
	payload  []byte
	storedAt time.Time
}

// memoryRemote is an in-process remoteStore.
type memoryRemote struct {
	mu      sync.Mutex
	data    map[string]remoteEntry
	flushed []string
	getErr  error
	sets    int
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{data: map[string]remoteEntry{}}
}

func (m *memoryRemote) Name() string { return "fake" }

func (m *memoryRemote) Get(_ context.Context, collection, key string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, time.Time{}, m.getErr
	}
	e, ok := m.data[collection+"/"+key]
	if !ok {
		return nil, time.Time{}, errCacheMiss
	}
	return e.payload, e.storedAt, nil
}

func (m *memoryRemote) Set(_ context.Context, collection, key string, payload []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[collection+"/"+key] = remoteEntry{payload: payload, storedAt: time.Now()}
	return nil
}

func (m *memoryRemote) Flush(_ context.Context, collections ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushed = append(m.flushed, collections...)
	m.data = map[string]remoteEntry{}
	return nil
}

func (m *memoryRemote) Close() error { return nil }

func newTestCache(t *testing.T, remotes ...remoteStore) *CacheService {
	t.Helper()
	c := newCacheService(time.Hour, time.Hour, logger.Nop(), remotes...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheGetSetAndExpiry(t *testing.T) {
	c := NewCache[string, int](time.Hour)
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.SetUntil("b", 2, time.Now().Add(-time.Second))
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.evictExpired(time.Now())
	assert.Equal(t, 1, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := NewCache[string, int](time.Minute)
	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

func TestCacheServiceMemoryOnly(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, ok := c.GetTickerData(ctx, "SPY")
	assert.False(t, ok)

	require.NoError(t, c.SetTickerData(ctx, "SPY", &models.TickerData{Symbol: "SPY", Price: 450}))
	got, ok := c.GetTickerData(ctx, "SPY")
	require.True(t, ok)
	assert.Equal(t, 450.0, got.Price)
	assert.Equal(t, []string{"memory"}, c.Layers())
}

func TestCacheServicePromotesRemoteHit(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()

	writer := newTestCache(t, remote)
	require.NoError(t, writer.SetIndicators(ctx, &models.IndicatorSnapshot{
		Source:     models.SourceLive,
		Indicators: []models.Indicator{{ID: "wti", Name: "WTI", Category: models.CategoryEnergy, Value: 80}},
	}))
	assert.Equal(t, 1, remote.sets)

	// a second instance shares only the remote layer
	reader := newTestCache(t, remote)
	snap, ok := reader.GetIndicators(ctx)
	require.True(t, ok)
	require.Len(t, snap.Indicators, 1)
	assert.Equal(t, "wti", snap.Indicators[0].ID)
	assert.Equal(t, 1, reader.indicatorCache.Len())
	assert.Equal(t, []string{"memory", "fake"}, reader.Layers())
}

func TestCacheServiceIgnoresStaleRemoteEntries(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	remote.data[collectionTickers+"/QQQ"] = remoteEntry{
		payload:  []byte(`{"symbol":"QQQ","price":380}`),
		storedAt: time.Now().Add(-2 * time.Hour),
	}

	c := newTestCache(t, remote)
	_, ok := c.GetTickerData(ctx, "QQQ")
	assert.False(t, ok)
}

func TestCacheServiceRemoteErrorIsAMiss(t *testing.T) {
	remote := newMemoryRemote()
	remote.getErr = errors.New("connection refused")

	c := newTestCache(t, remote)
	_, ok := c.GetTickerData(context.Background(), "GLD")
	assert.False(t, ok)
}

func TestCacheServiceFlush(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	c := newTestCache(t, remote)

	require.NoError(t, c.SetTickerData(ctx, "SPY", &models.TickerData{Symbol: "SPY"}))
	require.NoError(t, c.Flush(ctx))

	_, ok := c.GetTickerData(ctx, "SPY")
	assert.False(t, ok)
	assert.Equal(t, []string{collectionTickers, collectionIndicators}, remote.flushed)
}
