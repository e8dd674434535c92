package hostinfo

import (
	lua "github.com/yuin/gopher-lua"
)

// LuaGlobal is the name of the host table visible to catalog configs.
const LuaGlobal = "host"

// InjectHostTable creates a read-only host table and injects it into the Lua
// state as a global. It must run before any user configuration code.
func InjectHostTable(L *lua.LState, info *Info) {
	hostTable := L.NewTable()

	L.SetField(hostTable, "hostname", lua.LString(info.Hostname))
	L.SetField(hostTable, "username", lua.LString(info.Username))
	L.SetField(hostTable, "os", lua.LString(info.OS))
	L.SetField(hostTable, "arch", lua.LString(info.Arch))
	L.SetField(hostTable, "platform", lua.LString(info.Platform))
	L.SetField(hostTable, "family", lua.LString(info.Family))
	L.SetField(hostTable, "version", lua.LString(info.Version))
	L.SetField(hostTable, "major_version", lua.LString(info.MajorVersion()))
	L.SetField(hostTable, "is_linux", lua.LBool(info.IsLinux()))
	L.SetField(hostTable, "is_rhel_family", lua.LBool(info.IsRHELFamily()))

	// when(condition, value) returns value if condition is true, nil otherwise
	L.SetField(hostTable, "when", L.NewFunction(func(L *lua.LState) int {
		if L.CheckBool(1) {
			L.Push(L.Get(2))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetGlobal(LuaGlobal, makeReadOnly(L, hostTable))
}

// makeReadOnly returns a proxy that reads through to table and rejects writes.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("host table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
