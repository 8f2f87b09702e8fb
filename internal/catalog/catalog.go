package catalog

import (
	"slices"
	"sync"

	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// Catalog holds every registered descriptor plus its lookup indexes for a
// single application instance.
type Catalog struct {
	mu       sync.RWMutex
	modules  map[string]*descriptor.Descriptor
	byStrand *index
	byTopic  *index
	byTag    *index
	tree     *syllabus.Tree
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSyllabus makes Register warn about modules whose topic is not
// declared in the given syllabus tree.
func WithSyllabus(tree *syllabus.Tree) Option {
	return func(c *Catalog) { c.tree = tree }
}

// New creates and initializes an empty Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		modules:  make(map[string]*descriptor.Descriptor),
		byStrand: newIndex(),
		byTopic:  newIndex(),
		byTag:    newIndex(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the descriptor registered under id.
func (c *Catalog) Get(id string) (*descriptor.Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.modules[id]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.modules[id]
	return ok
}

// GetByStrand returns the modules placed in a strand, ordered by id.
func (c *Catalog) GetByStrand(strand syllabus.Strand) []*descriptor.Descriptor {
	return c.resolve(c.byStrand, string(strand))
}

// GetByTopic returns the modules placed in a topic, ordered by id.
func (c *Catalog) GetByTopic(topic string) []*descriptor.Descriptor {
	return c.resolve(c.byTopic, topic)
}

// GetByTag returns the modules carrying a tag, ordered by id.
func (c *Catalog) GetByTag(tag string) []*descriptor.Descriptor {
	return c.resolve(c.byTag, tag)
}

// GetAll returns every registered module, ordered by id.
func (c *Catalog) GetAll() []*descriptor.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*descriptor.Descriptor, 0, len(c.modules))
	for _, id := range c.sortedIDs() {
		out = append(out, c.modules[id].Clone())
	}
	return out
}

// GetAllIDs returns every registered id exactly once, sorted.
func (c *Catalog) GetAllIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedIDs()
}

// Len returns the number of registered modules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.modules)
}

// Clear drops all descriptors and indexes. It exists for test isolation and
// is never called during normal operation.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modules = make(map[string]*descriptor.Descriptor)
	c.byStrand = newIndex()
	c.byTopic = newIndex()
	c.byTag = newIndex()
}

// resolve maps an index bucket to descriptors. Ids missing from the
// primary table are skipped so index drift can never surface a stale entry.
func (c *Catalog) resolve(idx *index, key string) []*descriptor.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := idx.ids(key)
	out := make([]*descriptor.Descriptor, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.modules[id]; ok {
			out = append(out, d.Clone())
		}
	}
	return out
}

// sortedIDs must be called with the lock held.
func (c *Catalog) sortedIDs() []string {
	ids := make([]string, 0, len(c.modules))
	for id := range c.modules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// addToIndexes must be called with the write lock held.
func (c *Catalog) addToIndexes(d *descriptor.Descriptor) {
	c.byStrand.add(string(d.Strand()), d.ID)
	c.byTopic.add(d.Topic(), d.ID)
	for _, tag := range d.Tags() {
		c.byTag.add(tag, d.ID)
	}
}

// removeFromIndexes must be called with the write lock held.
func (c *Catalog) removeFromIndexes(d *descriptor.Descriptor) {
	c.byStrand.remove(string(d.Strand()), d.ID)
	c.byTopic.remove(d.Topic(), d.ID)
	for _, tag := range d.Tags() {
		c.byTag.remove(tag, d.ID)
	}
}
