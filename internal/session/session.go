// Package session wires the catalog, navigation controller and state cache
// into the activation contract the rendering layer relies on: when a module
// becomes active it is handed the module's renderer, its current state
// (restored from the cache or freshly created) and a change callback that
// round-trips into the cache.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/navigation"
	"github.com/vk/mathviz/internal/statecache"
)

var (
	// ErrModuleNotFound is returned when an id is not in the catalog.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidState is wrapped by StateError.
	ErrInvalidState = errors.New("invalid module state")
)

// StateError carries the validator messages for a rejected state change.
type StateError struct {
	ModuleID string
	Problems []string
}

// Error implements the error interface for StateError.
func (e *StateError) Error() string {
	return fmt.Sprintf("module %s: %v: %v", e.ModuleID, ErrInvalidState, e.Problems)
}

// Unwrap lets errors.Is match ErrInvalidState.
func (e *StateError) Unwrap() error { return ErrInvalidState }

// Session is one interactive user session over shared catalog, navigation
// and cache instances.
type Session struct {
	id      string
	catalog *catalog.Catalog
	nav     *navigation.Controller
	cache   *statecache.Cache
}

// New creates a session with a fresh random id.
func New(c *catalog.Catalog, nav *navigation.Controller, cache *statecache.Cache) *Session {
	return &Session{
		id:      uuid.NewString(),
		catalog: c,
		nav:     nav,
		cache:   cache,
	}
}

// ID returns the session id used in logs.
func (s *Session) ID() string { return s.id }

// Navigation returns the navigation controller.
func (s *Session) Navigation() *navigation.Controller { return s.nav }

// Open selects a module from the catalog: navigation moves to the module's
// strand and topic, records the visit, and the module is activated.
func (s *Session) Open(ctx context.Context, moduleID string) (*ActiveModule, error) {
	d, ok := s.catalog.Get(moduleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	s.nav.NavigateToStrand(ctx, d.Strand())
	s.nav.NavigateToTopic(ctx, d.Topic())
	s.nav.NavigateToModule(ctx, d.ID)

	return s.activate(ctx, d)
}

// Current activates the module at the current navigation position without
// touching history. It returns nil when no module is selected.
func (s *Session) Current(ctx context.Context) (*ActiveModule, error) {
	moduleID := s.nav.Position().Module
	if moduleID == "" {
		return nil, nil
	}
	d, ok := s.catalog.Get(moduleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}
	return s.activate(ctx, d)
}

// Back navigates back and activates the restored module. It returns nil
// when there is nothing to go back to.
func (s *Session) Back(ctx context.Context) (*ActiveModule, error) {
	if !s.nav.GoBack(ctx) {
		return nil, nil
	}
	return s.Current(ctx)
}

// Home returns navigation to Home. Cached state is kept.
func (s *Session) Home(ctx context.Context) {
	s.nav.GoHome(ctx)
}

// ResetModule discards the cached state of one module so the next
// activation starts from its initial state.
func (s *Session) ResetModule(ctx context.Context, moduleID string) bool {
	cleared := s.cache.Clear(moduleID)
	ctxlog.FromContext(ctx).Debug("Module state cleared.", "session", s.id, "module", moduleID, "cleared", cleared)
	return cleared
}

// ResetAll discards every cached module state.
func (s *Session) ResetAll(ctx context.Context) {
	s.cache.ResetAll()
	ctxlog.FromContext(ctx).Debug("All module state cleared.", "session", s.id)
}

// activate restores the module's cached state or creates and immediately
// caches a fresh one.
func (s *Session) activate(ctx context.Context, d *descriptor.Descriptor) (*ActiveModule, error) {
	logger := ctxlog.FromContext(ctx)

	if state, ok := s.cache.Get(d.ID); ok {
		logger.Debug("Module state restored.", "session", s.id, "module", d.ID)
		return &ActiveModule{Descriptor: d, State: state, Restored: true, session: s}, nil
	}

	state, err := newState(d)
	if err != nil {
		return nil, fmt.Errorf("module %s: failed to create initial state: %w", d.ID, err)
	}
	s.cache.Save(d.ID, state)
	logger.Debug("Module state created.", "session", s.id, "module", d.ID)
	return &ActiveModule{Descriptor: d, State: state, session: s}, nil
}

func newState(d *descriptor.Descriptor) (state descriptor.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	state = d.InitialState()
	if state == nil {
		return nil, errors.New("initial state is nil")
	}
	return state, nil
}
