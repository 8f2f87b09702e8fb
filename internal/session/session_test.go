package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/navigation"
	"github.com/vk/mathviz/internal/statecache"
	"github.com/vk/mathviz/internal/syllabus"
	"github.com/vk/mathviz/internal/testutil"
)

type fixture struct {
	ctx     context.Context
	session *Session
	catalog *catalog.Catalog
	nav     *navigation.Controller
	cache   *statecache.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	c := catalog.New()
	for _, d := range []*descriptor.Descriptor{
		testutil.NewDescriptor("vectors.dot", syllabus.Vectors, "products"),
		testutil.NewDescriptor("calculus.riemann", syllabus.Calculus, "integration"),
	} {
		require.True(t, c.Register(ctx, d).Success)
	}
	nav := navigation.New()
	cache := statecache.New()
	return &fixture{ctx: ctx, session: New(c, nav, cache), catalog: c, nav: nav, cache: cache}
}

func TestSession_OpenCreatesAndCachesInitialState(t *testing.T) {
	f := newFixture(t)

	active, err := f.session.Open(f.ctx, "vectors.dot")

	require.NoError(t, err)
	assert.False(t, active.Restored)
	assert.Equal(t, "vectors.dot", active.State.TopicID())
	cached, ok := f.cache.Get("vectors.dot")
	require.True(t, ok)
	assert.Same(t, active.State, cached, "cache and rendered state never diverge")
	assert.Equal(t, navigation.Position{Strand: syllabus.Vectors, Topic: "products", Module: "vectors.dot"}, f.nav.Position())
	assert.NotEmpty(t, f.session.ID())
}

func TestSession_ReopenRestoresState(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	active, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)
	require.NoError(t, active.Update(f.ctx, &testutil.FakeState{Topic: "vectors.dot", Value: 42}))

	// --- Act ---
	_, err = f.session.Open(f.ctx, "calculus.riemann")
	require.NoError(t, err)
	again, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)

	// --- Assert ---
	assert.True(t, again.Restored)
	assert.Equal(t, 42, again.State.(*testutil.FakeState).Value)
}

func TestSession_OpenUnknownModule(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Open(f.ctx, "vectors.missing")

	require.ErrorIs(t, err, ErrModuleNotFound)
	assert.True(t, f.nav.Position().IsHome(), "a failed open does not navigate")
}

func TestActiveModule_UpdateRejectsInvalidState(t *testing.T) {
	f := newFixture(t)
	active, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)

	err = active.Update(f.ctx, &testutil.FakeState{Topic: "vectors.dot", Value: -1})

	require.ErrorIs(t, err, ErrInvalidState)
	var stateErr *StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, []string{"value must be non-negative"}, stateErr.Problems)
	cached, _ := f.cache.Get("vectors.dot")
	assert.Equal(t, 0, cached.(*testutil.FakeState).Value, "invalid state is not committed")
}

func TestActiveModule_RenderRoundTripsChanges(t *testing.T) {
	f := newFixture(t)
	active, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)

	out, err := active.Render(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "vectors.dot:0", out)

	active.OnChange(f.ctx)(&testutil.FakeState{Topic: "vectors.dot", Value: 3})
	cached, _ := f.cache.Get("vectors.dot")
	assert.Equal(t, 3, cached.(*testutil.FakeState).Value)

	out, err = active.Render(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "vectors.dot:3", out)
}

func TestSession_BackActivatesPreviousModule(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)

	none, err := f.session.Back(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, none, "cannot go back past the first visit")

	_, err = f.session.Open(f.ctx, "calculus.riemann")
	require.NoError(t, err)

	back, err := f.session.Back(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, "vectors.dot", back.Descriptor.ID)
	assert.True(t, back.Restored)
}

func TestSession_HomeKeepsCachedState(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)

	f.session.Home(f.ctx)

	current, err := f.session.Current(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Equal(t, 1, f.cache.Len(), "clearing history does not lose work")
}

func TestSession_ResetModule(t *testing.T) {
	f := newFixture(t)
	active, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)
	require.NoError(t, active.Update(f.ctx, &testutil.FakeState{Topic: "vectors.dot", Value: 9}))

	assert.True(t, f.session.ResetModule(f.ctx, "vectors.dot"))

	fresh, err := f.session.Current(f.ctx)
	require.NoError(t, err)
	assert.False(t, fresh.Restored)
	assert.Equal(t, 0, fresh.State.(*testutil.FakeState).Value)

	f.session.ResetAll(f.ctx)
	assert.Zero(t, f.cache.Len())
}

func TestSession_CurrentWithUnregisteredModule(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Open(f.ctx, "vectors.dot")
	require.NoError(t, err)
	require.True(t, f.catalog.Unregister(f.ctx, "vectors.dot"))

	_, err = f.session.Current(f.ctx)
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestSession_FactoryPanicAfterRegistration(t *testing.T) {
	f := newFixture(t)
	calls := 0
	d := testutil.NewDescriptor("calculus.flaky", syllabus.Calculus, "integration")
	d.InitialState = func() descriptor.State {
		calls++
		if calls > 1 {
			panic("lost connection to formula library")
		}
		return &testutil.FakeState{Topic: "calculus.flaky"}
	}
	require.True(t, f.catalog.Register(f.ctx, d).Success)

	_, err := f.session.Open(f.ctx, "calculus.flaky")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost connection")
}
