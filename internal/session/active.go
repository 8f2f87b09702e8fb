package session

import (
	"context"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/descriptor"
)

// ActiveModule is what the rendering layer receives for the module in view.
type ActiveModule struct {
	Descriptor *descriptor.Descriptor
	State      descriptor.State
	// Restored is true when State came from the cache.
	Restored bool

	session *Session
}

// Update validates next with the module's validator and, if it is valid,
// commits it to the cache. Invalid states are not saved and are reported as
// a *StateError.
func (a *ActiveModule) Update(ctx context.Context, next descriptor.State) error {
	if problems := a.Descriptor.ValidateState(next); len(problems) > 0 {
		ctxlog.FromContext(ctx).Debug("Module state change rejected.", "session", a.session.id, "module", a.Descriptor.ID, "problems", problems)
		return &StateError{ModuleID: a.Descriptor.ID, Problems: problems}
	}
	a.session.cache.Save(a.Descriptor.ID, next)
	a.State = next
	return nil
}

// OnChange returns the callback handed to the renderer. Rejected changes are
// logged and dropped.
func (a *ActiveModule) OnChange(ctx context.Context) func(descriptor.State) {
	return func(next descriptor.State) {
		if err := a.Update(ctx, next); err != nil {
			ctxlog.FromContext(ctx).Warn("Ignoring invalid module state.", "module", a.Descriptor.ID, "error", err)
		}
	}
}

// Render invokes the module's render entry point with the current state.
func (a *ActiveModule) Render(ctx context.Context) (any, error) {
	return a.Descriptor.Render.Render(a.State, a.OnChange(ctx))
}
