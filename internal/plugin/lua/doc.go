// Package lua runs user-defined editor commands written in Lua.
//
// A script registers commands through the vantage module:
//
//	vantage.register("shout", function()
//	    local line, offset = vantage.cursor()
//	    vantage.insert(string.upper(vantage.line(line)))
//	end)
//
// Registered commands are exposed to the editor as "lua::<name>". Lines and
// offsets seen from Lua are 1-based.
//
// The io, os, debug and package libraries are not opened, and the global
// loaders (dofile, loadfile, load, loadstring) are removed.
package lua
