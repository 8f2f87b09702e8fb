package statecache

import (
	"slices"
	"sync"

	"github.com/vk/mathviz/internal/descriptor"
)

// Cache maps module ids to their last saved state.
type Cache struct {
	mu     sync.RWMutex
	states map[string]descriptor.State
}

// New creates a new, empty state cache.
func New() *Cache {
	return &Cache{states: make(map[string]descriptor.State)}
}

// Save stores state for moduleID, unconditionally replacing any previous
// value.
func (c *Cache) Save(moduleID string, state descriptor.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[moduleID] = state
}

// Get retrieves the saved state for moduleID.
func (c *Cache) Get(moduleID string) (descriptor.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.states[moduleID]
	return state, ok
}

// Clear evicts the state of one module and reports whether it existed.
func (c *Cache) Clear(moduleID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.states[moduleID]
	delete(c.states, moduleID)
	return ok
}

// ResetAll evicts every saved state.
func (c *Cache) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = make(map[string]descriptor.State)
}

// Len returns the number of modules with saved state.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}

// IDs returns the ids of modules with saved state, sorted.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.states))
	for id := range c.states {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
