package chart

import (
	"sync"
	"time"
)

const renderTTL = time.Minute

// renderCache keeps the most recent PNG. A run renders one dataset, and the
// HTTP chart endpoint re-renders the same dataset on every hit, so a single
// slot keyed by the dataset fingerprint covers both without a map to sweep.
type renderCache struct {
	mu         sync.RWMutex
	key        string
	png        []byte
	renderedAt time.Time
}

var lastRender renderCache

func (c *renderCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.key != key || c.png == nil || time.Since(c.renderedAt) > renderTTL {
		return nil, false
	}
	return append([]byte(nil), c.png...), true
}

func (c *renderCache) put(key string, png []byte) {
	c.mu.Lock()
	c.key = key
	c.png = append([]byte(nil), png...)
	c.renderedAt = time.Now()
	c.mu.Unlock()
}
