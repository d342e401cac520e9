package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	BalanceView      = "balance"
	TransactionsView = "transactions"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// ViewCache holds computed read views (source balance, transaction pages)
// keyed by view name + source id. The ledger engine invalidates a source's
// views after every applied transaction so reads following a write are
// always fresh.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewViewCache(ttl time.Duration) *ViewCache {
	return &ViewCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func Key(view, sourceID string) string {
	return fmt.Sprintf("%s:%s", view, sourceID)
}

// PageKey keys a paginated view. The source id stays the key suffix so
// InvalidateSource covers every page of the source.
func PageKey(view string, page, limit int, sourceID string) string {
	return fmt.Sprintf("%s:%d:%d:%s", view, page, limit, sourceID)
}

func (c *ViewCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *ViewCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// InvalidateSource drops every cached view derived from the source.
func (c *ViewCache) InvalidateSource(sourceID string) {
	suffix := ":" + sourceID
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
