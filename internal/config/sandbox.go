package config

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// safeLibs are the only standard libraries opened in a config VM.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are base-library functions that load or run outside code.
var blockedGlobals = []string{
	"require",
	"module",
	"dofile",
	"loadfile",
	"load",
	"loadstring",
}

// newSandboxedVM creates a Lua VM for config evaluation.
//
// os, io, package and debug are never opened, and the code-loading functions
// of the base library are removed. The VM stops when ctx is done.
func newSandboxedVM(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if ctx != nil {
		L.SetContext(ctx)
	}
	return L
}
