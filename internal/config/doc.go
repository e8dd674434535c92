// Package config loads the siteinfo product catalog from Lua.
//
// # Overview
//
// The catalog says which products exist at a site, where they live relative
// to the site root, and how to determine each one's version. A default
// catalog is embedded in the binary (catalog.lua); an operator may supply an
// override file with --config or SITEINFO_CONFIG.
//
// # Schema
//
// A config file assigns a global `siteinfo` table:
//
//	siteinfo = {
//	  interpreter    = "/bin/bash",          -- shell used for commands
//	  branch_command = "show-current-branch", -- optional; go-git when unset
//	  build_domain   = "leepfrog.com",        -- copy-service host derivation
//	  products = {
//	    { key = "core", name = "Core CGI", kind = "binary_dated",
//	      location = "web/courseleaf", binary = "courseleaf.cgi", args = { "-v" } },
//	    { key = "cat", name = "CAT", kind = "git_file",
//	      location = "web/courseleaf", version_file = "clver.txt" },
//	  },
//	}
//
// products is an array so that its order is the report order. Fields set by
// an override file replace the defaults; a products array replaces the whole
// default list.
//
// # Host Table
//
// Before the config runs, a read-only `host` table is injected (see package
// hostinfo), so configs can branch on the machine:
//
//	siteinfo.interpreter = host.when(host.is_rhel_family, "/bin/bash") or "/bin/sh"
//
// # Security Model
//
// Config code runs in a sandboxed gopher-lua VM with os, io, debug, and all
// code-loading functions removed. A config can describe commands but cannot
// run them.
package config
