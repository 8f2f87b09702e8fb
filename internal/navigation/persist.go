package navigation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/mathviz/internal/ctxlog"
)

// persist writes the position to the attached store. Callers hold c.mu so
// the stored position follows the order of moves. Navigation never fails
// because of storage, so errors are only logged.
func (c *Controller) persist(ctx context.Context, pos Position) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(pos)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Failed to encode navigation position.", "error", err)
		return
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		ctxlog.FromContext(ctx).Error("Failed to persist navigation position.", "key", c.key, "error", err)
	}
}

// Restore loads the persisted position, if any. History stays empty. It
// returns whether a position was found.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("failed to load navigation position: %w", err)
	}
	if !ok {
		return false, nil
	}

	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return false, fmt.Errorf("failed to decode navigation position: %w", err)
	}
	if pos.Strand != "" && !pos.Strand.IsValid() {
		return false, fmt.Errorf("persisted strand %q is not a known strand", pos.Strand)
	}

	c.mu.Lock()
	c.pos = pos
	c.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Navigation position restored.", "strand", pos.Strand, "topic", pos.Topic, "module", pos.Module)
	return true, nil
}
