// Package config loads the interpreter's settings from TOML or YAML files.
//
// A configuration file carries four sections:
//
//	[log]      level and optional log file
//	[editor]   status format, focus delay, undo history size, shift width
//	[[keys]]   key binding overrides layered over the default keymap
//	[plugins]  Lua scripts that register additional commands
//
// Missing files and missing keys fall back to Default. Watcher reloads a
// file when it changes on disk.
package config
