package luamodule

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/fsutil"
)

// LoadFile runs the script at path and builds a module from the table it
// returns. The caller owns the module and must Close it.
func LoadFile(ctx context.Context, path string) (*Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading lua module.", "path", path)

	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to run lua module %s: %w", path, err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("lua module %s must return a table, got %s", path, ret.Type())
	}

	m := &Module{Path: path, state: L}
	m.build(tbl)
	return m, nil
}

// LoadDir loads every .lua file under dir, in path order. Files that fail to
// load are skipped and reported together in the returned error; the modules
// that did load are returned either way.
func LoadDir(ctx context.Context, dir string) ([]*Module, error) {
	paths, err := fsutil.FindFilesByExtension(dir, ".lua")
	if err != nil {
		return nil, fmt.Errorf("failed to discover lua modules in %s: %w", dir, err)
	}

	var (
		mods []*Module
		errs []string
	)
	for _, path := range paths {
		m, err := LoadFile(ctx, path)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		mods = append(mods, m)
	}

	ctxlog.FromContext(ctx).Debug("Lua modules loaded.", "dir", dir, "loaded", len(mods), "failed", len(errs))
	if len(errs) > 0 {
		return mods, fmt.Errorf("failed to load lua modules:\n- %s", strings.Join(errs, "\n- "))
	}
	return mods, nil
}
