package chgraph

import lru "github.com/hashicorp/golang-lru"

// cacheStats counts hits and misses for one of the three LRU caches.
type cacheStats struct {
	Hits   uint64
	Misses uint64
}

// blockCache fronts the index/deserializer pair for vertex-blocks,
// shape-blocks or regions: a miss triggers exactly one
// deserialize and the result is inserted before being returned.
type blockCache[K comparable, V any] struct {
	lru   *lru.Cache
	stats cacheStats
}

func newBlockCache[K comparable, V any](capacity int) *blockCache[K, V] {
	c, err := lru.New(capacity)
	if err != nil {
		// Only non-positive capacities reach here; ReaderOptions.withDefaults
		// guarantees a positive value before any cache is constructed.
		panic("chgraph: invalid cache capacity: " + err.Error())
	}
	return &blockCache[K, V]{lru: c}
}

// getOrLoad returns the cached value for key, loading and inserting it
// on miss. load errors are never cached.
func (c *blockCache[K, V]) getOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		c.stats.Hits++
		return v.(V), nil
	}
	c.stats.Misses++
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.lru.Add(key, v)
	return v, nil
}

func (c *blockCache[K, V]) Len() int { return c.lru.Len() }
