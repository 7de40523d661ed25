// Package plugin loads Lua scripts that add motions, actions and key
// bindings to the interpreter.
//
// A script sees one global module, vicore:
//
//	vicore.motion(name, fn)   register a motion resolver
//	vicore.action(name, fn)   register an action resolver
//	vicore.bind(spec)         add a key binding (same fields as [[keys]])
//	vicore.log(msg, ...)      write to the plugin log
//
// Resolver functions receive the resolution context as a table and return
// a table describing the buffer command to run:
//
//	vicore.motion("_plugin_right2", function(ctx)
//	  return { step = "_vi_move_chars", args = { count = 2 * ctx.count } }
//	end)
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries.
package plugin
