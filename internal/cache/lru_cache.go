package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/bbernstein/tidecal/internal/metrics"
	"github.com/bbernstein/tidecal/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// LRUCacheEntry wraps the cached data with metadata
type LRUCacheEntry struct {
	Data      *models.Tide
	ExpiresAt time.Time
}

// TideStore is the persistent layer behind the LRU
type TideStore interface {
	GetTide(ctx context.Context, locationID string, date civil.Date) (*models.Tide, error)
	SaveTide(ctx context.Context, locationID string, tide *models.Tide) error
	SaveTidesBatch(ctx context.Context, locationID string, tides []*models.Tide) error
}

// CacheService provides a two-layer caching system using LRU and DynamoDB.
// Either layer may be disabled through CacheConfig.
type CacheService struct {
	lru          *lru.Cache[string, *LRUCacheEntry]
	store        TideStore
	ttl          time.Duration
	clock        clock
	lruHits      atomic.Uint64
	lruMisses    atomic.Uint64
	dynamoHits   atomic.Uint64
	dynamoMisses atomic.Uint64
}

// NewCacheService creates a cache service, connecting to DynamoDB when the
// persistent layer is enabled
func NewCacheService(ctx context.Context, cacheConfig *config.CacheConfig) (*CacheService, error) {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}

	var store TideStore
	if cacheConfig.EnableDynamoCache {
		dynamoClient, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		dynamoCache := NewDynamoTideCache(dynamoClient, cacheConfig)
		warnIfTableMissing(ctx, dynamoCache)
		store = dynamoCache
	}

	return NewCacheServiceWithStore(store, cacheConfig)
}

func warnIfTableMissing(ctx context.Context, dynamoCache *DynamoTideCache) {
	exists, err := dynamoCache.TableExists(ctx)
	if err != nil {
		log.Warn().Err(err).Str("table", dynamoCache.tableName).Msg("Unable to check tide cache table")
		return
	}
	if !exists {
		log.Warn().Str("table", dynamoCache.tableName).Msg("Tide cache table not found, cache writes will fail")
	}
}

// NewCacheServiceWithStore builds the service over an existing persistent
// layer. A nil store leaves only the LRU.
func NewCacheServiceWithStore(store TideStore, cacheConfig *config.CacheConfig) (*CacheService, error) {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}

	c := &CacheService{
		store: store,
		ttl:   cacheConfig.GetTideLRUTTL(),
		clock: &systemClock{},
	}

	if cacheConfig.EnableLRUCache {
		lruCache, err := lru.New[string, *LRUCacheEntry](cacheConfig.TideLRUSize)
		if err != nil {
			return nil, fmt.Errorf("creating LRU cache: %w", err)
		}
		c.lru = lruCache
	}

	return c, nil
}

// getCacheKey generates a unique cache key for a location and date
func getCacheKey(locationID string, date civil.Date) string {
	return fmt.Sprintf("%s:%s", locationID, date.String())
}

// GetTide tries the LRU first, then DynamoDB. A miss in both returns nil
// without error.
func (c *CacheService) GetTide(ctx context.Context, locationID string, date civil.Date) (*models.Tide, error) {
	key := getCacheKey(locationID, date)

	if c.lru != nil {
		if entry, ok := c.lru.Get(key); ok {
			if c.clock.Now().Before(entry.ExpiresAt) {
				c.lruHits.Add(1)
				metrics.ObserveCacheLookup("lru", true)
				return entry.Data, nil
			}
			// Entry expired, remove it
			c.lru.Remove(key)
		}
		c.lruMisses.Add(1)
		metrics.ObserveCacheLookup("lru", false)
	}

	if c.store == nil {
		return nil, nil
	}

	tide, err := c.store.GetTide(ctx, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("getting tide from DynamoDB: %w", err)
	}

	if tide != nil {
		c.dynamoHits.Add(1)
		metrics.ObserveCacheLookup("dynamo", true)
		c.addToLRU(key, tide)
		return tide, nil
	}
	c.dynamoMisses.Add(1)
	metrics.ObserveCacheLookup("dynamo", false)

	return nil, nil
}

// SaveTide saves an aggregate to both layers
func (c *CacheService) SaveTide(ctx context.Context, locationID string, tide *models.Tide) error {
	if tide == nil {
		return fmt.Errorf("nil tide for location %s", locationID)
	}
	c.addToLRU(getCacheKey(locationID, tide.Date), tide)

	if c.store != nil {
		if err := c.store.SaveTide(ctx, locationID, tide); err != nil {
			return fmt.Errorf("saving tide to DynamoDB: %w", err)
		}
	}

	return nil
}

// SaveTidesBatch saves several aggregates of one location to both layers
func (c *CacheService) SaveTidesBatch(ctx context.Context, locationID string, tides []*models.Tide) error {
	for _, tide := range tides {
		if tide == nil {
			return fmt.Errorf("nil tide for location %s", locationID)
		}
		c.addToLRU(getCacheKey(locationID, tide.Date), tide)
	}

	if c.store != nil {
		if err := c.store.SaveTidesBatch(ctx, locationID, tides); err != nil {
			return fmt.Errorf("saving tides batch to DynamoDB: %w", err)
		}
	}

	return nil
}

func (c *CacheService) addToLRU(key string, tide *models.Tide) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, &LRUCacheEntry{
		Data:      tide,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	})
}

// GetCacheStats returns statistics about cache hits and misses
func (c *CacheService) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":      c.lruHits.Load(),
		"lru_misses":    c.lruMisses.Load(),
		"dynamo_hits":   c.dynamoHits.Load(),
		"dynamo_misses": c.dynamoMisses.Load(),
	}
}

// Clear removes all entries from the LRU cache
func (c *CacheService) Clear() {
	if c.lru != nil {
		c.lru.Purge()
	}
}
