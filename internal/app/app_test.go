package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/navigation"
	"github.com/vk/mathviz/internal/syllabus"
	"github.com/vk/mathviz/internal/testutil"
	"github.com/vk/mathviz/modules/dotproduct"
	"github.com/vk/mathviz/modules/permutation"
	"github.com/vk/mathviz/modules/riemann"
)

const settingsHCL = `
settings {
  history_limit = 3
  store         = "state/mathviz.db"
  lua_modules   = "lua"
}

strand "vectors" {
  label = format("%s: %s", app_name, "Vectors")

  topic "products" {
    label = "Dot and cross products"
  }
}

strand "calculus" {
  topic "integration" {
    label = upper("integration")
  }
}
`

const geometricLua = `
return {
  id = "sequences-series.geometric-sequence",
  name = "Geometric sequences",
  description = "Terms of a * r^(n-1).",
  syllabus = { strand = "sequences-series", topic = "geometric" },
  engine = "lua",
  metadata = { version = "1.0.0", tags = { "sequence" } },
  initial_state = function() return { topicId = "geometric", a = 1, r = 2 } end,
  validate = function(state) return {} end,
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		errMsg []string
	}{
		{name: "zero value", cfg: Config{}},
		{name: "full", cfg: Config{LogFormat: "json", LogLevel: "debug", HistoryLimit: 10}},
		{
			name:   "all invalid",
			cfg:    Config{LogFormat: "xml", LogLevel: "trace", HistoryLimit: -1},
			errMsg: []string{`invalid log format "xml"`, `invalid log level "trace"`, "history limit must not be negative"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if len(tc.errMsg) == 0 {
				require.NoError(t, err)
				assert.Equal(t, tc.cfg, *cfg)
				return
			}
			require.Error(t, err)
			for _, msg := range tc.errMsg {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, logs := SetupAppTest(t, &Config{})

	assert.Equal(t, []string{
		riemann.ID,
		permutation.ID,
		dotproduct.ID,
	}, a.Catalog().GetAllIDs())
	assert.Equal(t, navigation.DefaultHistoryLimit, a.Navigation().HistoryLimit())
	assert.NotEmpty(t, a.Session().ID())
	assert.Contains(t, logs.String(), "Module catalog ready.")
}

func TestNewApp_RejectedModuleDoesNotStopStartup(t *testing.T) {
	// --- Arrange ---
	good := catalog.DescriptorModule{New: func() *descriptor.Descriptor {
		return testutil.NewDescriptor("vectors.good", syllabus.Vectors, "good")
	}}
	bad := catalog.DescriptorModule{New: func() *descriptor.Descriptor {
		d := testutil.NewDescriptor("vectors.bad", syllabus.Vectors, "bad")
		d.Render = nil
		return d
	}}

	// --- Act ---
	a, logs := SetupAppTest(t, &Config{}, good, bad)

	// --- Assert ---
	assert.Equal(t, []string{"vectors.good"}, a.Catalog().GetAllIDs())
	assert.Contains(t, logs.String(), "Some modules were rejected and are unavailable.")
	assert.Contains(t, logs.String(), "missing required field: render")
}

func TestNewApp_WithSettingsFile(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "mathviz.hcl")
	writeFile(t, settingsPath, settingsHCL)
	writeFile(t, filepath.Join(dir, "lua", "geometric.lua"), geometricLua)

	// --- Act ---
	a, _ := SetupAppTest(t, &Config{SettingsPath: settingsPath})

	// --- Assert ---
	cfg := a.Config()
	assert.Equal(t, 3, cfg.HistoryLimit)
	assert.Equal(t, filepath.Join(dir, "state", "mathviz.db"), cfg.StorePath)
	assert.Equal(t, filepath.Join(dir, "lua"), cfg.LuaModulesPath)
	assert.Equal(t, 3, a.Navigation().HistoryLimit())

	assert.True(t, a.Catalog().Has("sequences-series.geometric-sequence"))
	assert.Equal(t, 4, a.Catalog().Len())
	assert.Equal(t, "mathviz: Vectors", a.Syllabus().StrandLabel(syllabus.Vectors))
	assert.Equal(t, "INTEGRATION", a.Syllabus().TopicLabel("integration"))
}

func TestNewApp_FlagsOverrideSettings(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "mathviz.hcl")
	writeFile(t, settingsPath, `settings { history_limit = 3 }`)

	a, _ := SetupAppTest(t, &Config{SettingsPath: settingsPath, HistoryLimit: 7})

	assert.Equal(t, 7, a.Navigation().HistoryLimit())
}

func TestNewApp_SettingsErrors(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		errMsg string
	}{
		{name: "syntax", src: `settings {`, errMsg: "failed to parse settings file"},
		{name: "unknown attribute", src: `settings { colour = "blue" }`, errMsg: "failed to decode settings file"},
		{name: "bad history limit", src: `settings { history_limit = 0 }`, errMsg: "history_limit must be at least 1"},
		{name: "unknown strand", src: `strand "geometry" {}`, errMsg: "Unknown strand"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mathviz.hcl")
			writeFile(t, path, tc.src)

			_, err := NewApp(&testutil.SafeBuffer{}, &Config{SettingsPath: path})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNewApp_PositionSurvivesRestart(t *testing.T) {
	// --- Arrange ---
	storePath := filepath.Join(t.TempDir(), "mathviz.db")
	first, err := NewApp(&testutil.SafeBuffer{}, &Config{StorePath: storePath})
	require.NoError(t, err)

	_, err = first.Session().Open(first.Context(), dotproduct.ID)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// --- Act ---
	second, logs := SetupAppTest(t, &Config{StorePath: storePath})

	// --- Assert ---
	assert.Equal(t, navigation.Position{
		Strand: syllabus.Vectors,
		Topic:  dotproduct.Topic,
		Module: dotproduct.ID,
	}, second.Navigation().Position())
	assert.Empty(t, second.Navigation().History(), "history is session-scoped")
	assert.Contains(t, logs.String(), "Navigation position restored.")

	active, err := second.Session().Current(second.Context())
	require.NoError(t, err)
	assert.False(t, active.Restored, "state cache is session-scoped")
}

func TestLabels(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{})
	ctx := a.Context()

	_, err := a.Session().Open(ctx, permutation.ID)
	require.NoError(t, err)

	crumbs := a.Navigation().Breadcrumbs()
	require.Len(t, crumbs, 3)
	assert.Equal(t, "Probability and Statistics", crumbs[0].Label)
	assert.Equal(t, permutation.Topic, crumbs[1].Label)
	assert.Equal(t, "Permutations: the slot method", crumbs[2].Label)

	l := labels{tree: a.Syllabus(), catalog: a.Catalog()}
	assert.Equal(t, "unknown.module", l.ModuleLabel("unknown.module"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warn").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("info").String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}
