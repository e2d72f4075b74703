package cypher

import (
	"sync"

	"github.com/cypherplan/cyq/src/plan"
)

// planCache stores compiled plans keyed by "graph\x00query text", adapted
// from the teacher's SimpleCache: the same double-checked RWMutex and FIFO
// eviction, just holding a *plan.Plan instead of a compiled Cypher string.
// Cypher parameters are looked up by name at runtime rather than baked into
// the query text, so caching by text alone (independent of parameter
// values) is sound — the plan shape never depends on a parameter's value.
type planCache struct {
	mu      sync.RWMutex
	cache   map[string]*plan.Plan
	order   []string // FIFO insertion order
	maxSize int
}

func newPlanCache(maxSize int) *planCache {
	return &planCache{
		cache:   make(map[string]*plan.Plan),
		maxSize: maxSize,
	}
}

// fetch returns the cached plan for key, or builds one with fn, caches it,
// and returns that. fn is only called once per key even under concurrent
// callers racing on a miss (the second-check-after-write-lock below).
func (c *planCache) fetch(key string, fn func() (*plan.Plan, error)) (*plan.Plan, error) {
	c.mu.RLock()
	if p, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.cache[key]; ok {
		return p, nil
	}

	p, err := fn()
	if err != nil {
		return nil, err
	}

	if len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}

	c.cache[key] = p
	c.order = append(c.order, key)
	return p, nil
}
