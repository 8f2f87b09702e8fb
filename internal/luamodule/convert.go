package luamodule

import (
	"slices"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value into plain Go data. Tables with a non-empty
// array part become []any, other tables map[string]any. Functions and
// userdata are dropped.
func toGo(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	case *lua.LTable:
		if n := v.Len(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, toGo(v.RawGetInt(i)))
			}
			return list
		}
		m := make(map[string]any)
		v.ForEach(func(key, value lua.LValue) {
			if k, ok := key.(lua.LString); ok {
				if gv := toGo(value); gv != nil {
					m[string(k)] = gv
				}
			}
		})
		return m
	}
	return nil
}

// toLua converts plain Go data into a Lua value owned by L.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(v)
	case float64:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case bool:
		return lua.LBool(v)
	case []any:
		tbl := L.NewTable()
		for _, item := range v {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case []string:
		tbl := L.NewTable()
		for _, item := range v {
			tbl.Append(lua.LString(item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			tbl.RawSetString(k, toLua(L, v[k]))
		}
		return tbl
	case State:
		return toLua(L, map[string]any(v))
	}
	return lua.LNil
}

// stringField reads a string field, returning "" for anything else.
func stringField(tbl *lua.LTable, name string) string {
	if s, ok := tbl.RawGetString(name).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// stringList reads a list of strings. It returns nil when the field is not a
// table so a missing list can be told apart from an empty one.
func stringList(tbl *lua.LTable, name string) []string {
	list, ok := tbl.RawGetString(name).(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		out = append(out, lua.LVAsString(list.RawGetInt(i)))
	}
	return out
}
