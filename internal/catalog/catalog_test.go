package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
	"github.com/vk/mathviz/internal/testutil"
)

func ids(ds []*descriptor.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

// registerAll registers descriptors and fails the test on any rejection.
func registerAll(t *testing.T, ctx context.Context, c *Catalog, ds ...*descriptor.Descriptor) {
	t.Helper()
	for _, d := range ds {
		res := c.Register(ctx, d)
		require.True(t, res.Success, "register %s: %v", d.ID, res.Errors)
	}
}

func TestCatalog_ThreeModuleScenario(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.NewContext(t)
	c := New()

	// --- Act ---
	registerAll(t, ctx, c,
		testutil.NewDescriptor("a.one", syllabus.Vectors, "t1", "x"),
		testutil.NewDescriptor("a.two", syllabus.Vectors, "t1", "x"),
		testutil.NewDescriptor("b.one", syllabus.Calculus, "t2", "x"),
	)

	// --- Assert ---
	assert.ElementsMatch(t, []string{"a.one", "a.two"}, ids(c.GetByStrand(syllabus.Vectors)))
	assert.ElementsMatch(t, []string{"a.one", "a.two", "b.one"}, ids(c.GetByTag("x")))
	assert.Equal(t, 3, c.GetStats().TotalModules)
}

func TestCatalog_GetReturnsRegisteredDescriptor(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	registerAll(t, ctx, c, testutil.NewDescriptor("vectors.dot-cross-product", syllabus.Vectors, "dot-cross-product"))

	d, ok := c.Get("vectors.dot-cross-product")
	require.True(t, ok)
	assert.Equal(t, "vectors.dot-cross-product", d.ID)
	assert.True(t, c.Has("vectors.dot-cross-product"))

	_, ok = c.Get("vectors.missing")
	assert.False(t, ok)
}

func TestCatalog_OverwriteKeepsIDUnique(t *testing.T) {
	// --- Arrange ---
	ctx, logs := testutil.NewContext(t)
	c := New()
	first := testutil.NewDescriptor("a.one", syllabus.Vectors, "old-topic", "old-tag")
	second := testutil.NewDescriptor("a.one", syllabus.Calculus, "new-topic", "new-tag")
	second.Name = "Replacement"

	// --- Act ---
	registerAll(t, ctx, c, first)
	res := c.Register(ctx, second)

	// --- Assert ---
	require.True(t, res.Success)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "overwritten")
	assert.Contains(t, logs.String(), "overwritten")

	assert.Equal(t, []string{"a.one"}, c.GetAllIDs())
	d, ok := c.Get("a.one")
	require.True(t, ok)
	assert.Equal(t, "Replacement", d.Name)

	// The overwritten descriptor's buckets no longer reference the id.
	assert.Empty(t, c.GetByStrand(syllabus.Vectors))
	assert.Empty(t, c.GetByTopic("old-topic"))
	assert.Empty(t, c.GetByTag("old-tag"))
	assert.Equal(t, []string{"a.one"}, ids(c.GetByTopic("new-topic")))
	assert.Equal(t, []string{"a.one"}, ids(c.GetByTag("new-tag")))
}

func TestCatalog_IndexConsistency(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	ds := []*descriptor.Descriptor{
		testutil.NewDescriptor("vectors.dot", syllabus.Vectors, "products", "algebra", "3d"),
		testutil.NewDescriptor("vectors.cross", syllabus.Vectors, "products", "3d"),
		testutil.NewDescriptor("calculus.riemann", syllabus.Calculus, "integration", "numeric"),
		testutil.NewDescriptor("complex-numbers.roots", syllabus.ComplexNumbers, "polar"),
	}
	registerAll(t, ctx, c, ds...)

	for _, d := range ds {
		assert.Contains(t, ids(c.GetByStrand(d.Strand())), d.ID)
		assert.Contains(t, ids(c.GetByTopic(d.Topic())), d.ID)
		for _, tag := range d.Tags() {
			assert.Contains(t, ids(c.GetByTag(tag)), d.ID)
		}
	}
	assert.Equal(t, []string{"3d", "algebra", "numeric"}, c.Tags())
	assert.Equal(t, []string{"integration", "polar", "products"}, c.Topics())
}

func TestCatalog_RejectedDescriptorLeavesCatalogUntouched(t *testing.T) {
	fields := map[string]func(d *descriptor.Descriptor){
		"id":            func(d *descriptor.Descriptor) { d.ID = "" },
		"name":          func(d *descriptor.Descriptor) { d.Name = "" },
		"description":   func(d *descriptor.Descriptor) { d.Description = "" },
		"syllabusRef":   func(d *descriptor.Descriptor) { d.Syllabus = nil },
		"engine":        func(d *descriptor.Descriptor) { d.Engine = "" },
		"render":        func(d *descriptor.Descriptor) { d.Render = nil },
		"initialState":  func(d *descriptor.Descriptor) { d.InitialState = nil },
		"validateState": func(d *descriptor.Descriptor) { d.ValidateState = nil },
		"metadata":      func(d *descriptor.Descriptor) { d.Metadata = nil },
	}

	for field, mutate := range fields {
		t.Run(field, func(t *testing.T) {
			ctx, _ := testutil.NewContext(t)
			c := New()
			registerAll(t, ctx, c, testutil.NewDescriptor("a.base", syllabus.Vectors, "t", "x"))
			before := c.GetAllIDs()

			d := testutil.NewDescriptor("a.candidate", syllabus.Vectors, "t", "x")
			mutate(d)
			res := c.Register(ctx, d)

			require.False(t, res.Success)
			require.NotEmpty(t, res.Errors)
			mentioned := false
			for _, e := range res.Errors {
				if strings.Contains(e, field) {
					mentioned = true
				}
			}
			assert.True(t, mentioned, "no error mentions %q: %v", field, res.Errors)
			assert.Equal(t, before, c.GetAllIDs())
			assert.Equal(t, []string{"a.base"}, ids(c.GetByTag("x")))
			assert.Equal(t, []string{"a.base"}, ids(c.GetByTopic("t")))
			require.Error(t, res.Err())
		})
	}
}

func TestCatalog_RejectedOverwriteKeepsPreviousEntry(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	registerAll(t, ctx, c, testutil.NewDescriptor("a.one", syllabus.Vectors, "t", "x"))

	bad := testutil.NewDescriptor("a.one", syllabus.Calculus, "u", "y")
	bad.InitialState = func() descriptor.State { panic("boom") }
	res := c.Register(ctx, bad)

	require.False(t, res.Success)
	assert.Contains(t, res.Errors[0], "boom")
	d, ok := c.Get("a.one")
	require.True(t, ok)
	assert.Equal(t, syllabus.Vectors, d.Strand())
	assert.Equal(t, []string{"a.one"}, ids(c.GetByTag("x")))
	assert.Empty(t, c.GetByTag("y"))
}

func TestCatalog_RegisterNil(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()

	res := c.Register(ctx, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "", res.ModuleID)
	assert.Zero(t, c.Len())
	assert.Contains(t, res.Err().Error(), "<unnamed>")
}

func TestCatalog_UnregisterCompleteness(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.NewContext(t)
	c := New()
	target := testutil.NewDescriptor("a.one", syllabus.Vectors, "t1", "x", "y")
	registerAll(t, ctx, c, target, testutil.NewDescriptor("a.two", syllabus.Vectors, "t1", "x"))

	// --- Act ---
	removed := c.Unregister(ctx, "a.one")

	// --- Assert ---
	require.True(t, removed)
	_, ok := c.Get("a.one")
	assert.False(t, ok)
	assert.NotContains(t, ids(c.GetByStrand(syllabus.Vectors)), "a.one")
	assert.NotContains(t, ids(c.GetByTopic("t1")), "a.one")
	assert.NotContains(t, ids(c.GetByTag("x")), "a.one")
	assert.Empty(t, c.GetByTag("y"))
	assert.NotContains(t, c.byTag.buckets, "y")
	assert.NotContains(t, c.Tags(), "y", "empty buckets are dropped")

	assert.False(t, c.Unregister(ctx, "a.one"), "second unregister removes nothing")
}

func TestCatalog_ResolveSkipsDriftedIndexEntries(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	registerAll(t, ctx, c, testutil.NewDescriptor("a.one", syllabus.Vectors, "t1", "x"))

	// Simulate drift: an index entry without a primary entry.
	c.byTag.add("x", "ghost.entry")

	assert.Equal(t, []string{"a.one"}, ids(c.GetByTag("x")))
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	registerAll(t, ctx, c, testutil.NewDescriptor("a.one", syllabus.Vectors, "t1", "x"))

	d, _ := c.Get("a.one")
	d.Metadata.Tags[0] = "mutated"

	assert.Equal(t, []string{"a.one"}, ids(c.GetByTag("x")))
	again, _ := c.Get("a.one")
	assert.Equal(t, []string{"x"}, again.Tags())
}

func TestCatalog_Clear(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()
	registerAll(t, ctx, c, testutil.NewDescriptor("a.one", syllabus.Vectors, "t1", "x"))

	c.Clear()

	assert.Empty(t, c.GetAllIDs())
	assert.Empty(t, c.GetByStrand(syllabus.Vectors))
	assert.Empty(t, c.GetByTag("x"))
	assert.Empty(t, c.GetAll())
}

func TestCatalog_GetStats(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	c := New()

	svg := testutil.NewDescriptor("vectors.dot", syllabus.Vectors, "products")
	svg.Engine = descriptor.EngineSVG
	svg.Metadata.Difficulty = descriptor.Beginner
	three := testutil.NewDescriptor("vectors.planes", syllabus.Vectors, "planes")
	three.Engine = descriptor.EngineThree
	three.Metadata.Difficulty = descriptor.Advanced
	plain := testutil.NewDescriptor("calculus.limits", syllabus.Calculus, "limits")

	registerAll(t, ctx, c, svg, three, plain)

	want := Stats{
		TotalModules: 3,
		ByStrand:     map[syllabus.Strand]int{syllabus.Vectors: 2, syllabus.Calculus: 1},
		ByEngine: map[descriptor.Engine]int{
			descriptor.EngineSVG:   1,
			descriptor.EngineThree: 1,
			descriptor.EngineText:  1,
		},
		ByDifficulty: map[string]int{"beginner": 1, "advanced": 1, UnknownDifficulty: 1},
	}
	if diff := cmp.Diff(want, c.GetStats()); diff != "" {
		t.Errorf("GetStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_SyllabusTopicWarning(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	tree := syllabus.NewTree()
	tree.AddTopic(syllabus.Vectors, &syllabus.Topic{Key: "products"})
	c := New(WithSyllabus(tree))

	declared := c.Register(ctx, testutil.NewDescriptor("vectors.dot", syllabus.Vectors, "products"))
	undeclared := c.Register(ctx, testutil.NewDescriptor("vectors.lines", syllabus.Vectors, "lines"))

	assert.True(t, declared.Success)
	assert.Empty(t, declared.Warnings)
	assert.True(t, undeclared.Success, "undeclared topics only warn")
	require.Len(t, undeclared.Warnings, 1)
	assert.Contains(t, undeclared.Warnings[0], "lines")
}
