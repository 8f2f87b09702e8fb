package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/kvstore"
	"github.com/vk/mathviz/internal/luamodule"
	"github.com/vk/mathviz/internal/navigation"
	"github.com/vk/mathviz/internal/session"
	"github.com/vk/mathviz/internal/statecache"
	"github.com/vk/mathviz/internal/syllabus"
)

// AppName is the application name, also exposed to settings files.
const AppName = "mathviz"

// PositionKey is the store key the navigation position is persisted under.
const PositionKey = AppName + "/navigation"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	outW   io.Writer
	logger *slog.Logger
	config Config

	tree       *syllabus.Tree
	catalog    *catalog.Catalog
	store      kvstore.Store
	navigation *navigation.Controller
	cache      *statecache.Cache
	session    *session.Session
	luaModules []*luamodule.Module
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and catalog. When
// no modules are given, the compiled-in core modules are registered.
//
// A module that fails registration is logged and skipped. Only failures to
// read the settings file or open the store are returned.
func NewApp(outW io.Writer, cfg *Config, modules ...catalog.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{ctx: ctx, outW: outW, logger: logger, config: *cfg}

	a.tree = syllabus.NewTree()
	if cfg.SettingsPath != "" {
		settings, err := LoadSettings(ctx, cfg.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings.apply(&a.config)
		a.tree = settings.Syllabus
	}

	a.catalog = catalog.New(catalog.WithSyllabus(a.tree))
	if len(modules) == 0 {
		modules = coreModules
	}
	modules = slices.Clone(modules)
	if a.config.LuaModulesPath != "" {
		mods, err := luamodule.LoadDir(ctx, a.config.LuaModulesPath)
		if err != nil {
			logger.Warn("Some lua modules could not be loaded.", "error", err)
		}
		a.luaModules = mods
		for _, m := range mods {
			modules = append(modules, m)
		}
	}
	if err := catalog.Bootstrap(ctx, a.catalog, modules...); err != nil {
		logger.Warn("Some modules were rejected and are unavailable.", "error", err)
	}

	if a.config.StorePath == "" {
		a.store = kvstore.NewMemory()
	} else {
		store, err := kvstore.OpenSQLite(a.config.StorePath)
		if err != nil {
			a.closeLuaModules()
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.store = store
		logger.Debug("Position store opened.", "path", a.config.StorePath)
	}

	a.navigation = navigation.New(
		navigation.WithHistoryLimit(a.config.HistoryLimit),
		navigation.WithLabeler(labels{tree: a.tree, catalog: a.catalog}),
		navigation.WithStore(a.store, PositionKey),
	)
	if ok, err := a.navigation.Restore(ctx); err != nil {
		logger.Warn("Ignoring persisted navigation position.", "error", err)
	} else if ok {
		pos := a.navigation.Position()
		logger.Info("Navigation position restored.", "strand", pos.Strand, "topic", pos.Topic, "module", pos.Module)
	}

	a.cache = statecache.New()
	a.session = session.New(a.catalog, a.navigation, a.cache)
	a.ctx = ctxlog.With(ctx, "session", a.session.ID())

	logger.Debug("Application initialized.", "modules", a.catalog.Len(), "history_limit", a.navigation.HistoryLimit())
	return a, nil
}

// Context returns the application context carrying its logger.
func (a *App) Context() context.Context { return a.ctx }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Config returns the effective configuration, settings file included.
func (a *App) Config() Config { return a.config }

// Syllabus returns the syllabus tree.
func (a *App) Syllabus() *syllabus.Tree { return a.tree }

// Catalog returns the module catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Navigation returns the navigation controller.
func (a *App) Navigation() *navigation.Controller { return a.navigation }

// Cache returns the module state cache.
func (a *App) Cache() *statecache.Cache { return a.cache }

// Session returns the user session.
func (a *App) Session() *session.Session { return a.session }

// Close releases the store and the lua interpreters.
func (a *App) Close() error {
	a.logger.Debug("Closing application.")
	a.closeLuaModules()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}

func (a *App) closeLuaModules() {
	for _, m := range a.luaModules {
		m.Close()
	}
	a.luaModules = nil
}
