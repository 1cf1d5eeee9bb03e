package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds built indices.
type Cache struct {
	AuditIndex   map[string]Entry
	StorageIndex map[string]Entry

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache loads both indices concurrently. It does NOT store the result;
// use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	var (
		auditIndex   map[string]Entry
		storageIndex map[string]Entry
		auditErr     error
		storageErr   error
		wg           sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		auditIndex, auditErr = spec.Adapter.LoadAuditIndex(ctx, spec.Bucket, spec.Prefix)
	}()

	go func() {
		defer wg.Done()
		storageIndex, storageErr = spec.Adapter.LoadStorageIndex(ctx, spec.Bucket, spec.Prefix)
	}()

	wg.Wait()

	if auditErr != nil {
		return nil, auditErr
	}
	if storageErr != nil {
		return nil, storageErr
	}

	return &Cache{
		AuditIndex:   auditIndex,
		StorageIndex: storageIndex,
		Built:        time.Now(),
		TTL:          spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the stored cache for spec, rebuilding it when
// missing or expired. Concurrent rebuilds of the same key collapse into one.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		if spec.CacheTTL > 0 {
			globalCacheStore.mu.Lock()
			globalCacheStore.caches[cacheKey] = newCache
			globalCacheStore.mu.Unlock()
		}

		return newCache, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Cache), nil
}

// InvalidateCache removes the cache for the given spec.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}

// InvalidateAdapter removes every cache built by the named adapter, whatever
// its bucket or prefix.
func InvalidateAdapter(name string) {
	globalCacheStore.mu.Lock()
	defer globalCacheStore.mu.Unlock()
	for key := range globalCacheStore.caches {
		if strings.HasPrefix(key, name+"|") {
			delete(globalCacheStore.caches, key)
		}
	}
}
