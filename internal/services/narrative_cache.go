package services

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// NarrativeCache memoizes Master Narratives by (career, grade, subject,
// skill, context). Bounded LRU with a TTL; the hit flag is explicit, never
// inferred from timestamps. Concurrent misses for one key produce exactly
// one generation call.
type NarrativeCache interface {
	Get(ctx context.Context, params types.NarrativeParams) (*types.MasterNarrative, bool, error)
	Invalidate(params types.NarrativeParams)
	Len() int
}

type cacheEntry struct {
	key       string
	narrative *types.MasterNarrative
	storedAt  time.Time
}

type narrativeCache struct {
	log       *logger.Logger
	generator NarrativeService

	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	capacity int
	ttl      time.Duration

	group singleflight.Group
	// clock is swapped by tests to drive TTL expiry.
	clock func() time.Time
}

func NewNarrativeCache(baseLog *logger.Logger, generator NarrativeService, capacity int, ttl time.Duration) NarrativeCache {
	if capacity <= 0 {
		capacity = 128
	}
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &narrativeCache{
		log:       baseLog.With("service", "NarrativeCache"),
		generator: generator,
		entries:   make(map[string]*list.Element),
		order:     list.New(),
		capacity:  capacity,
		ttl:       ttl,
		clock:     time.Now,
	}
}

func (c *narrativeCache) Get(ctx context.Context, params types.NarrativeParams) (*types.MasterNarrative, bool, error) {
	key := params.Key()

	if narrative, ok := c.lookup(key); ok {
		c.log.Debug("Narrative cache hit", "key", key)
		return narrative, true, nil
	}

	// singleflight collapses concurrent misses for the same key.
	val, err, shared := c.group.Do(key, func() (any, error) {
		// A flight that finished while we were waiting may have filled
		// the cache already.
		if narrative, ok := c.lookup(key); ok {
			return narrative, nil
		}
		narrative, genErr := c.generator.Generate(ctx, params)
		if genErr != nil {
			return nil, genErr
		}
		c.store(key, narrative)
		return narrative, nil
	})
	if err != nil {
		return nil, false, err
	}

	if shared {
		c.log.Debug("Narrative generation deduplicated", "key", key)
	}
	return val.(*types.MasterNarrative), false, nil
}

func (c *narrativeCache) Invalidate(params types.NarrativeParams) {
	key := params.Key()
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}

func (c *narrativeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *narrativeCache) lookup(key string) (*types.MasterNarrative, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	if c.clock().Sub(entry.storedAt) > c.ttl {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false
	}
	c.order.MoveToFront(el)
	return entry.narrative, true
}

func (c *narrativeCache) store(key string, narrative *types.MasterNarrative) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).narrative = narrative
		el.Value.(*cacheEntry).storedAt = c.clock()
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&cacheEntry{key: key, narrative: narrative, storedAt: c.clock()})
	c.entries[key] = el

	for len(c.entries) > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*cacheEntry)
		c.order.Remove(oldest)
		delete(c.entries, evicted.key)
		c.log.Debug("Narrative evicted", "key", evicted.key)
	}
}
