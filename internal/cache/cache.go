// Package cache holds the route-level output cache. A listing endpoint stores
// its rendered body under its route; a mutation marks the route stale so the
// next read recomputes it from current data.
package cache

import "sync"

type Routes struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewRoutes() *Routes {
	return &Routes{entries: make(map[string][]byte)}
}

// Get returns the cached body for route, if one is present and fresh.
func (c *Routes) Get(route string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	body, ok := c.entries[route]

	return body, ok
}

// Set stores the rendered body for route.
func (c *Routes) Set(route string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[route] = body
}

// Invalidate marks the routes stale. Unknown routes are ignored.
func (c *Routes) Invalidate(routes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, route := range routes {
		delete(c.entries, route)
	}
}
