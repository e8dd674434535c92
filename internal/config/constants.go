package config

// Lua schema field names and globals
const (
	luaGlobalSiteinfo     = "siteinfo"
	luaFieldInterpreter   = "interpreter"
	luaFieldBranchCommand = "branch_command"
	luaFieldBuildDomain   = "build_domain"
	luaFieldProducts      = "products"
	luaFieldKey           = "key"
	luaFieldName          = "name"
	luaFieldKind          = "kind"
	luaFieldLocation      = "location"
	luaFieldBinary        = "binary"
	luaFieldArgs          = "args"
	luaFieldVersionFile   = "version_file"
	luaFieldCommand       = "command"
)

// EnvConfigPath names the environment variable holding an override file path.
const EnvConfigPath = "SITEINFO_CONFIG"

// DefaultVersionFile is used by git_file products without a version_file.
const DefaultVersionFile = "clver.txt"

// MaxProductCount bounds the catalog size.
const MaxProductCount = 256
