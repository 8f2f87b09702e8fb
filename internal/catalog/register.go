package catalog

import (
	"context"
	"fmt"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/descriptor"
)

// RegistrationResult reports the outcome of a Register call. Registration
// failures are returned here, never panicked or returned as errors.
type RegistrationResult struct {
	Success  bool
	ModuleID string
	Errors   []string
	Warnings []string
}

// Err folds a failed result into an error, or returns nil on success.
func (r *RegistrationResult) Err() error {
	if r == nil || r.Success {
		return nil
	}
	return &RegistrationError{ModuleID: r.ModuleID, Problems: r.Errors}
}

// RegistrationError describes why a module was rejected.
type RegistrationError struct {
	ModuleID string
	Problems []string
}

// Error implements the error interface for RegistrationError.
func (e *RegistrationError) Error() string {
	id := e.ModuleID
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Sprintf("module %s rejected: %v", id, e.Problems)
}

// Register validates d and, if it is valid, commits it and indexes it by
// strand, topic and every tag. An id that is already present is overwritten
// (last write wins) and reported as a warning. A descriptor with any
// validation error is rejected and nothing is changed.
func (c *Catalog) Register(ctx context.Context, d *descriptor.Descriptor) *RegistrationResult {
	res := &RegistrationResult{}
	if d != nil {
		res.ModuleID = d.ID
	}
	logger := ctxlog.FromContext(ctx).With("module", res.ModuleID)

	// The smoke test runs module code, so it happens outside the lock.
	errs, warnings := descriptor.Validate(d)
	res.Errors = errs
	res.Warnings = warnings

	c.mu.Lock()
	defer c.mu.Unlock()

	var existing *descriptor.Descriptor
	if d != nil {
		existing = c.modules[d.ID]
	}
	if existing != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("module %q is already registered and will be overwritten", d.ID))
	}
	if len(errs) == 0 && c.tree != nil && !c.tree.HasTopic(d.Strand(), d.Topic()) && c.tree.TopicCount() > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("topic %q is not declared under strand %q in the syllabus", d.Topic(), d.Strand()))
	}

	for _, w := range res.Warnings {
		logger.Warn("Module registration warning.", "warning", w)
	}

	if len(errs) > 0 {
		logger.Warn("Module registration rejected.", "errors", errs)
		return res
	}

	stored := d.Clone()
	if existing != nil {
		c.removeFromIndexes(existing)
	}
	c.modules[stored.ID] = stored
	c.addToIndexes(stored)

	res.Success = true
	logger.Debug("Module registered.", "strand", stored.Strand(), "topic", stored.Topic(), "tags", stored.Tags())
	return res
}

// Unregister removes a module and prunes it from every index bucket it
// occupied. It reports whether anything was removed.
func (c *Catalog) Unregister(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.modules[id]
	if !ok {
		return false
	}
	c.removeFromIndexes(d)
	delete(c.modules, id)

	ctxlog.FromContext(ctx).Debug("Module unregistered.", "module", id)
	return true
}
