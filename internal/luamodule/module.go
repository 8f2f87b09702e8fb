package luamodule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// Module is a catalog.Module backed by a Lua script.
type Module struct {
	Path string

	mu     sync.Mutex
	state  *lua.LState
	desc   *descriptor.Descriptor
	closed bool
}

// Descriptor returns the descriptor built from the script.
func (m *Module) Descriptor() *descriptor.Descriptor {
	return m.desc
}

// Register implements catalog.Module.
func (m *Module) Register(ctx context.Context, c *catalog.Catalog) *catalog.RegistrationResult {
	return c.Register(ctx, m.desc)
}

// Close releases the interpreter. Entry points called afterwards fail.
func (m *Module) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.state.Close()
		m.closed = true
	}
}

// call runs fn with args and returns its single result. Lua errors are
// returned as Go errors.
func (m *Module) call(fn *lua.LFunction, args ...any) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("lua module %s is closed", m.Path)
	}

	L := m.state
	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = toLua(L, a)
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func (m *Module) initialState(fn *lua.LFunction) descriptor.InitialStateFunc {
	return func() descriptor.State {
		ret, err := m.call(fn)
		if err != nil {
			// Surfaces through the registration smoke test.
			panic(err.Error())
		}
		tbl, ok := ret.(*lua.LTable)
		if !ok {
			return nil
		}
		st, _ := toGo(tbl).(map[string]any)
		return State(st)
	}
}

func (m *Module) validate(fn *lua.LFunction) descriptor.ValidateFunc {
	return func(s descriptor.State) []string {
		st, ok := s.(State)
		if !ok {
			return []string{fmt.Sprintf("unexpected state type %T", s)}
		}
		ret, err := m.call(fn, map[string]any(st))
		if err != nil {
			return []string{err.Error()}
		}
		switch v := toGo(ret).(type) {
		case nil:
			return nil
		case string:
			return []string{v}
		case []any:
			problems := make([]string, 0, len(v))
			for _, p := range v {
				problems = append(problems, fmt.Sprint(p))
			}
			return problems
		case map[string]any:
			// An empty Lua table converts to an empty map.
			if len(v) == 0 {
				return nil
			}
		}
		return []string{"validate must return a list of messages"}
	}
}

func (m *Module) render(fn *lua.LFunction) descriptor.RenderFunc {
	return func(s descriptor.State, _ func(descriptor.State)) (any, error) {
		st, ok := s.(State)
		if !ok {
			return nil, fmt.Errorf("unexpected state type %T", s)
		}
		ret, err := m.call(fn, map[string]any(st))
		if err != nil {
			return nil, err
		}
		return lua.LVAsString(ret), nil
	}
}

// textRender is used when a script declares no render function. It lists
// the state fields in key order.
func textRender(s descriptor.State, _ func(descriptor.State)) (any, error) {
	st, ok := s.(State)
	if !ok {
		return nil, fmt.Errorf("unexpected state type %T", s)
	}
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %v\n", k, st[k])
	}
	return b.String(), nil
}

// build converts the table returned by a script into a descriptor. Missing
// or malformed fields are left zero so the catalog reports them.
func (m *Module) build(tbl *lua.LTable) {
	d := &descriptor.Descriptor{
		ID:          stringField(tbl, "id"),
		Name:        stringField(tbl, "name"),
		Description: stringField(tbl, "description"),
		Engine:      descriptor.Engine(stringField(tbl, "engine")),
	}

	if ref, ok := tbl.RawGetString("syllabus").(*lua.LTable); ok {
		d.Syllabus = &descriptor.SyllabusRef{
			Strand:   syllabus.Strand(stringField(ref, "strand")),
			Topic:    stringField(ref, "topic"),
			Subtopic: stringField(ref, "subtopic"),
		}
	}

	if meta, ok := tbl.RawGetString("metadata").(*lua.LTable); ok {
		d.Metadata = &descriptor.Metadata{
			Version:            stringField(meta, "version"),
			Tags:               stringList(meta, "tags"),
			Difficulty:         descriptor.Difficulty(stringField(meta, "difficulty")),
			Prerequisites:      stringList(meta, "prerequisites"),
			LearningObjectives: stringList(meta, "learning_objectives"),
		}
		if n, ok := meta.RawGetString("estimated_time").(lua.LNumber); ok {
			d.Metadata.EstimatedTime = time.Duration(float64(n) * float64(time.Minute))
		}
	}

	if fn, ok := tbl.RawGetString("initial_state").(*lua.LFunction); ok {
		d.InitialState = m.initialState(fn)
	}
	if fn, ok := tbl.RawGetString("validate").(*lua.LFunction); ok {
		d.ValidateState = m.validate(fn)
	}
	switch fn := tbl.RawGetString("render").(type) {
	case *lua.LFunction:
		d.Render = m.render(fn)
	case *lua.LNilType:
		d.Render = descriptor.RenderFunc(textRender)
	default:
		// Declared but not callable; reported as not invocable.
		d.Render = descriptor.RenderFunc(nil)
	}

	m.desc = d
}
