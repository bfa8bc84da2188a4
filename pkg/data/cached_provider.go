package data

import (
	"context"
	"log"
	"sync"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// MemoryCache implements SeriesCache using in-memory storage
type MemoryCache struct {
	cache map[string]*types.PriceSeries
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]*types.PriceSeries),
	}
}

// Get retrieves a series from cache if available
func (c *MemoryCache) Get(ticker string) (*types.PriceSeries, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	series, exists := c.cache[ticker]
	return series, exists
}

// Set stores a series in cache
func (c *MemoryCache) Set(ticker string, series *types.PriceSeries) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[ticker] = series
}

// Clear removes all cached series
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]*types.PriceSeries)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another HistoryProvider with caching. A scan
// followed by a backtest hits every ticker twice; the second pass is
// served from memory.
type CachedProvider struct {
	provider HistoryProvider
	cache    SeriesCache
}

// NewCachedProvider creates a new cached data provider
func NewCachedProvider(provider HistoryProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// NewCachedProviderWithCache creates a new cached data provider with custom cache
func NewCachedProviderWithCache(provider HistoryProvider, cache SeriesCache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// History loads a series with caching to avoid repeated fetches
func (p *CachedProvider) History(ctx context.Context, ticker string) (*types.PriceSeries, error) {
	if cached, exists := p.cache.Get(ticker); exists {
		return cached, nil
	}

	log.Printf("🔄 Loading price history for %s", ticker)
	series, err := p.provider.History(ctx, ticker)
	if err != nil {
		log.Printf("❌ Failed to load history for %s: %v", ticker, err)
		return nil, err
	}

	p.cache.Set(ticker, series)

	log.Printf("✅ Loaded and cached %s (%d days)", ticker, series.Len())
	return series, nil
}

// ClearCache clears all cached series
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}

// GetCacheSize returns the number of cached entries
func (p *CachedProvider) GetCacheSize() int {
	return p.cache.Size()
}
