package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// evictLRU — удаляет наименее используемую страницу.
func (c *ResultCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		c.reportSize()
	}
}

func (c *ResultCache) removeElement(elem *list.Element) {
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.key)
	}
	c.ll.Remove(elem)
}

func (c *ResultCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *ResultCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — снимает просроченные записи с хвоста до первой актуальной.
// Хвост упорядочен по последнему доступу, а не по createdAt, поэтому чистка неполная.
func (c *ResultCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		ent := back.Value.(*entry)
		if !now.After(ent.expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
	c.reportSize()
}

func (c *ResultCache) reportSize() {
	metrics.CacheSize.Set(float64(c.ll.Len()))
}
