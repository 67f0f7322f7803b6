package memory

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

type entry struct {
	key       string
	page      domain.ResultPage
	createdAt time.Time
	expiresAt time.Time
}

// ResultCache — LRU-кэш страниц каталога с опциональным TTL.
// capacity <= 0 — без ограничения размера; ttl <= 0 — записи живут до инвалидации.
type ResultCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *ResultCache) Get(_ context.Context, key string) (domain.ResultPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return domain.ResultPage{}, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, c.now()) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		c.reportSize()
		return domain.ResultPage{}, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.page.Clone(), true
}

func (c *ResultCache) Set(_ context.Context, key string, page domain.ResultPage) error {
	if key == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.CacheOps.WithLabelValues("set").Inc()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.page = page.Clone()
		ent.createdAt = now
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		page:      page.Clone(),
		createdAt: now,
		expiresAt: c.expiryFrom(now),
	})
	c.index[key] = elem
	c.reportSize()

	if c.capacity > 0 && c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *ResultCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if elem, ok := c.index[key]; ok {
			c.removeElement(elem)
			metrics.CacheOps.WithLabelValues("invalidated").Inc()
		}
	}
	c.reportSize()
}

func (c *ResultCache) DeletePrefix(_ context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.index {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(elem)
			removed++
		}
	}
	if removed > 0 {
		metrics.CacheOps.WithLabelValues("invalidated").Add(float64(removed))
		c.reportSize()
	}
	return removed
}

func (c *ResultCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := c.ll.Len(); n > 0 {
		metrics.CacheOps.WithLabelValues("invalidated").Add(float64(n))
	}
	c.ll.Init()
	c.index = make(map[string]*list.Element)
	c.reportSize()
}

// Len — текущее число записей (включая ещё не вычищенные просроченные).
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
