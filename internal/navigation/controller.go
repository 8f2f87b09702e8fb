package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/kvstore"
	"github.com/vk/mathviz/internal/syllabus"
)

// DefaultHistoryLimit is the history bound used when none is configured.
const DefaultHistoryLimit = 50

// Position is the current place in the hierarchy. An empty field means
// nothing is selected at that level.
type Position struct {
	Strand syllabus.Strand `json:"currentStrand"`
	Topic  string          `json:"currentTopic"`
	Module string          `json:"currentModule"`
}

// IsHome reports whether nothing is selected.
func (p Position) IsHome() bool {
	return p == Position{}
}

// HistoryEntry records one module visit.
type HistoryEntry struct {
	Strand    syllabus.Strand
	Topic     string
	Module    string
	Timestamp time.Time
}

// Controller owns the navigation position and history.
type Controller struct {
	mu      sync.RWMutex
	pos     Position
	history []HistoryEntry
	limit   int
	now     func() time.Time
	labels  Labeler
	store   kvstore.Store
	key     string
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistoryLimit sets the maximum history length. Values below one are
// ignored.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithClock replaces time.Now as the history timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLabeler sets the source of breadcrumb labels.
func WithLabeler(l Labeler) Option {
	return func(c *Controller) { c.labels = l }
}

// WithStore persists the position to store under key.
func WithStore(store kvstore.Store, key string) Option {
	return func(c *Controller) {
		c.store = store
		c.key = key
	}
}

// New creates a Controller positioned at Home with empty history.
func New(opts ...Option) *Controller {
	c := &Controller{
		limit:  DefaultHistoryLimit,
		now:    time.Now,
		labels: PlainLabels{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Position returns the current position.
func (c *Controller) Position() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos
}

// HistoryLimit returns the configured history bound.
func (c *Controller) HistoryLimit() int {
	return c.limit
}

// NavigateToStrand selects a strand and clears topic and module.
func (c *Controller) NavigateToStrand(ctx context.Context, strand syllabus.Strand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = Position{Strand: strand}

	ctxlog.FromContext(ctx).Debug("Navigated to strand.", "strand", strand)
	c.persist(ctx, c.pos)
}

// NavigateToTopic selects a topic within the current strand and clears the
// module.
func (c *Controller) NavigateToTopic(ctx context.Context, topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos.Topic = topic
	c.pos.Module = ""

	ctxlog.FromContext(ctx).Debug("Navigated to topic.", "topic", topic)
	c.persist(ctx, c.pos)
}

// NavigateToModule activates a module under the current strand and topic
// and appends the visit to history. When history is full the oldest entry
// is evicted first.
func (c *Controller) NavigateToModule(ctx context.Context, moduleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := HistoryEntry{
		Strand:    c.pos.Strand,
		Topic:     c.pos.Topic,
		Module:    moduleID,
		Timestamp: c.now(),
	}
	c.history = appendBounded(c.history, entry, c.limit)
	c.pos.Module = moduleID

	ctxlog.FromContext(ctx).Debug("Navigated to module.", "module", moduleID, "history", len(c.history))
	c.persist(ctx, c.pos)
}

// GoBack drops the most recent history entry and restores the position of
// the entry before it. With one entry or fewer it does nothing and returns
// false.
func (c *Controller) GoBack(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) <= 1 {
		return false
	}
	c.history = c.history[:len(c.history)-1]
	last := c.history[len(c.history)-1]
	c.pos = Position{Strand: last.Strand, Topic: last.Topic, Module: last.Module}

	ctxlog.FromContext(ctx).Debug("Navigated back.", "module", c.pos.Module)
	c.persist(ctx, c.pos)
	return true
}

// GoHome clears the position and the history.
func (c *Controller) GoHome(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = Position{}
	c.history = nil

	ctxlog.FromContext(ctx).Debug("Navigated home.")
	c.persist(ctx, c.pos)
}

// CanGoBack reports whether GoBack would move.
func (c *Controller) CanGoBack() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.history) > 1
}

// History returns a copy of the history, oldest first.
func (c *Controller) History() []HistoryEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}
