// Package luamodule loads visualization modules authored in Lua.
//
// Each .lua file returns a table describing one module:
//
//	return {
//	  id = "sequences-series.arithmetic-sequence",
//	  name = "Arithmetic sequences",
//	  description = "...",
//	  syllabus = { strand = "sequences-series", topic = "arithmetic" },
//	  engine = "lua",
//	  metadata = { version = "1.0.0", tags = { "sequence" } },
//	  initial_state = function() return { topicId = "arithmetic", a = 1, d = 2 } end,
//	  validate = function(state) return {} end,
//	  render = function(state) return "..." end,
//	}
//
// The factory, validator and renderer stay Lua functions; the loaded module
// adapts them to the descriptor entry points. Each file runs in its own
// interpreter, serialised by a mutex.
package luamodule
