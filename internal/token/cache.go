package token

import "sync"

// DecimalsCache caches mint decimals by address.
type DecimalsCache struct {
	mu   sync.RWMutex
	data map[string]uint8
}

func NewDecimalsCache() *DecimalsCache {
	return &DecimalsCache{data: make(map[string]uint8)}
}

func (c *DecimalsCache) Get(mint string) (uint8, bool) {
	c.mu.RLock()
	decimals, ok := c.data[mint]
	c.mu.RUnlock()
	return decimals, ok
}

func (c *DecimalsCache) Set(mint string, decimals uint8) {
	c.mu.Lock()
	c.data[mint] = decimals
	c.mu.Unlock()
}
