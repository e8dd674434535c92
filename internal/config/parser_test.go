package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/hostinfo"
)

var rhel8 = hostinfo.Static{Info: hostinfo.Info{
	Hostname: "dev3.leepfrog.com",
	OS:       "linux",
	Platform: "rocky",
	Family:   hostinfo.FamilyRHEL,
	Version:  "8.9",
}}

func TestParser_Default(t *testing.T) {
	p := NewParser(rhel8, afero.NewMemMapFs())
	cfg, err := p.Default(context.Background())
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	wantKeys := []string{
		"core", "ribbit", "api", "admin-remote",
		"uas-core-cl", "uas-core-clpatch", "uas-core-assets-ribbit",
		"cat", "cim", "clss", "formbuilder",
	}
	if len(cfg.Products) != len(wantKeys) {
		t.Fatalf("len(Products) = %d, want %d", len(cfg.Products), len(wantKeys))
	}
	for i, key := range wantKeys {
		if cfg.Products[i].Key != key {
			t.Errorf("Products[%d].Key = %q, want %q", i, cfg.Products[i].Key, key)
		}
	}

	core := cfg.Products[0]
	if core.Kind != KindBinaryDated || core.Location != "web/courseleaf" || core.Binary != "courseleaf.cgi" {
		t.Errorf("core = %+v", core)
	}
	if len(core.Args) != 1 || core.Args[0] != "-v" {
		t.Errorf("core.Args = %v, want [-v]", core.Args)
	}

	clss := cfg.Products[9]
	if clss.Kind != KindGitParsed || !strings.Contains(clss.Command, `lib/wen.atj`) {
		t.Errorf("clss = %+v", clss)
	}
	if cfg.Products[7].VersionFile != "clver.txt" {
		t.Errorf("cat.VersionFile = %q", cfg.Products[7].VersionFile)
	}
	if cfg.Interpreter != "/bin/bash" {
		t.Errorf("Interpreter = %q", cfg.Interpreter)
	}
	if cfg.BuildDomain != "leepfrog.com" {
		t.Errorf("BuildDomain = %q", cfg.BuildDomain)
	}
	if cfg.BranchCommand != "" {
		t.Errorf("BranchCommand = %q, want empty", cfg.BranchCommand)
	}
}

func TestParser_ParseString(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal",
			code: `siteinfo = { products = { { key = "x", kind = "git", location = "web" } } }`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Products[0].DisplayName() != "x" {
					t.Errorf("DisplayName() = %q, want key fallback", cfg.Products[0].DisplayName())
				}
			},
		},
		{
			name: "git_file defaults version file",
			code: `siteinfo = { products = { { key = "cat", kind = "git_file", location = "web/courseleaf" } } }`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Products[0].VersionFile != DefaultVersionFile {
					t.Errorf("VersionFile = %q, want %q", cfg.Products[0].VersionFile, DefaultVersionFile)
				}
			},
		},
		{
			name: "host table drives values",
			code: `siteinfo = {
				interpreter = host.when(host.is_rhel_family, "/bin/bash") or "/bin/sh",
				products = { { key = "v" .. host.major_version, kind = "git", location = "web" } },
			}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Interpreter != "/bin/bash" {
					t.Errorf("Interpreter = %q", cfg.Interpreter)
				}
				if cfg.Products[0].Key != "v8" {
					t.Errorf("Key = %q, want v8", cfg.Products[0].Key)
				}
			},
		},
		{
			name:    "missing siteinfo table",
			code:    `x = 1`,
			wantErr: "missing or invalid 'siteinfo' table",
		},
		{
			name:    "syntax error",
			code:    `siteinfo = {`,
			wantErr: "Lua error",
		},
		{
			name:    "no products",
			code:    `siteinfo = {}`,
			wantErr: "at least one product is required",
		},
		{
			name:    "wrong field type",
			code:    `siteinfo = { interpreter = 5, products = {} }`,
			wantErr: "invalid field siteinfo.interpreter",
		},
		{
			name:    "product entry not a table",
			code:    `siteinfo = { products = { "core" } }`,
			wantErr: "invalid field products[1]",
		},
		{
			name:    "args must be strings",
			code:    `siteinfo = { products = { { key = "c", kind = "binary", location = "web", binary = "c.cgi", args = { 1 } } } }`,
			wantErr: "args[1]",
		},
		{
			name:    "unknown kind",
			code:    `siteinfo = { products = { { key = "c", kind = "rpm", location = "web" } } }`,
			wantErr: `unknown kind "rpm"`,
		},
		{
			name: "duplicate key",
			code: `siteinfo = { products = {
				{ key = "c", kind = "git", location = "web" },
				{ key = "c", kind = "git", location = "web/x" },
			} }`,
			wantErr: `duplicate key "c"`,
		},
		{
			name:    "binary required",
			code:    `siteinfo = { products = { { key = "c", kind = "binary_dated", location = "web" } } }`,
			wantErr: "binary is required",
		},
		{
			name:    "command required",
			code:    `siteinfo = { products = { { key = "c", kind = "git_parsed", location = "web" } } }`,
			wantErr: "command is required",
		},
		{
			name:    "location escapes root",
			code:    `siteinfo = { products = { { key = "c", kind = "git", location = "../other" } } }`,
			wantErr: "escapes the site root",
		},
		{
			name:    "absolute location",
			code:    `siteinfo = { products = { { key = "c", kind = "git", location = "/etc" } } }`,
			wantErr: "relative to the site root",
		},
		{
			name:    "host table is read-only",
			code:    `host.hostname = "x"; siteinfo = {}`,
			wantErr: "read-only",
		},
	}

	p := NewParser(rhel8, afero.NewMemMapFs())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := p.ParseString(context.Background(), tt.code)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseString() expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseString() error = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParser_NoProvider(t *testing.T) {
	p := NewParser(nil, nil)
	_, err := p.ParseString(context.Background(), `siteinfo = { build_domain = host.hostname }`)
	if err == nil || !strings.Contains(err.Error(), "attempt to index") {
		t.Fatalf("ParseString() error = %v, want host table to be absent", err)
	}
}

func TestParser_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/etc/siteinfo/branch.lua": `siteinfo = { branch_command = "show-current-branch" }`,
		"/etc/siteinfo/products.lua": `siteinfo = {
			build_domain = "example.edu",
			products = { { key = "cim", name = "CIM", kind = "git_file", location = "web/courseleaf/cim" } },
		}`,
		"/etc/siteinfo/broken.lua": `siteinfo = { products = { { key = "x", kind = "nope", location = "web" } } }`,
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p := NewParser(rhel8, fs)
	ctx := context.Background()

	t.Run("empty path is default", func(t *testing.T) {
		cfg, err := p.Load(ctx, "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(cfg.Products) != 11 {
			t.Errorf("len(Products) = %d, want 11", len(cfg.Products))
		}
	})

	t.Run("scalar override keeps default products", func(t *testing.T) {
		cfg, err := p.Load(ctx, "/etc/siteinfo/branch.lua")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.BranchCommand != "show-current-branch" {
			t.Errorf("BranchCommand = %q", cfg.BranchCommand)
		}
		if cfg.Interpreter != "/bin/bash" || cfg.BuildDomain != "leepfrog.com" {
			t.Errorf("defaults not kept: %+v", cfg)
		}
		if len(cfg.Products) != 11 {
			t.Errorf("len(Products) = %d, want 11", len(cfg.Products))
		}
	})

	t.Run("products override replaces list", func(t *testing.T) {
		cfg, err := p.Load(ctx, "/etc/siteinfo/products.lua")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(cfg.Products) != 1 || cfg.Products[0].Key != "cim" {
			t.Errorf("Products = %+v", cfg.Products)
		}
		if cfg.BuildDomain != "example.edu" {
			t.Errorf("BuildDomain = %q", cfg.BuildDomain)
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := p.Load(ctx, "/etc/siteinfo/broken.lua")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Load() error = %v, want *ParseError", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Load(ctx, "/etc/siteinfo/missing.lua")
		if err == nil || !strings.Contains(err.Error(), "config file not found") {
			t.Fatalf("Load() error = %v", err)
		}
	})
}

func TestFormatError(t *testing.T) {
	err := &ParseError{Message: "Lua error", Detail: "line 1: bad\nstack traceback:\n\t[G]: ?"}

	if got := FormatError(err, false); got != "Lua error: line 1: bad" {
		t.Errorf("FormatError(false) = %q", got)
	}
	if got := FormatError(err, true); !strings.Contains(got, "stack traceback") {
		t.Errorf("FormatError(true) = %q, want full detail", got)
	}
	if got := FormatError(errors.New("plain"), false); got != "plain" {
		t.Errorf("FormatError(plain) = %q", got)
	}
}
