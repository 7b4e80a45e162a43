// Package cache provides the bounded in-process caches used by the
// aggregation and filtering paths. Eviction is oldest-inserted-first;
// instances are constructed explicitly and passed in so tests get
// fresh, isolated caches.
package cache

import "sync"

type FIFO struct {
	mu       sync.Mutex
	capacity int
	order    []string
	items    map[string]any
}

func NewFIFO(capacity int) *FIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO{
		capacity: capacity,
		items:    make(map[string]any, capacity),
	}
}

func (c *FIFO) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

// Set inserts or updates a value. Updating an existing key keeps its
// insertion position; a new key that pushes the cache past capacity
// evicts the oldest-inserted entry.
func (c *FIFO) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}
	c.items[key] = value
	c.order = append(c.order, key)
	if len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
}

func (c *FIFO) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *FIFO) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	c.items = make(map[string]any, c.capacity)
}
