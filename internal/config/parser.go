package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/hostinfo"
)

//go:embed catalog.lua
var defaultCatalog string

// DefaultCatalogSource returns the Lua source of the built-in catalog.
func DefaultCatalogSource() string {
	return defaultCatalog
}

// Parser evaluates siteinfo Lua configs.
type Parser struct {
	provider hostinfo.Provider
	fs       afero.Fs
}

// NewParser creates a parser. The provider supplies the host table and may be
// nil, in which case configs see no host table. A nil fs means the OS
// filesystem.
func NewParser(provider hostinfo.Provider, fs afero.Fs) *Parser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Parser{provider: provider, fs: fs}
}

// ParseString parses a complete config from Lua source and validates it.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	layer, err := p.evaluate(ctx, luaCode)
	if err != nil {
		return nil, err
	}
	if err := layer.cfg.Validate(); err != nil {
		return nil, &ParseError{Message: "config validation failed", Detail: err.Error()}
	}
	return &layer.cfg, nil
}

// Default returns the built-in catalog.
func (p *Parser) Default(ctx context.Context) (*Config, error) {
	return p.ParseString(ctx, defaultCatalog)
}

// Load returns the built-in catalog with the override file at path applied.
// An empty path returns the built-in catalog unchanged.
func (p *Parser) Load(ctx context.Context, path string) (*Config, error) {
	base, err := p.Default(ctx)
	if err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	if path == "" {
		return base, nil
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	layer, err := p.evaluate(ctx, string(data))
	if err != nil {
		return nil, err
	}

	merged := layer.applyTo(*base)
	if err := merged.Validate(); err != nil {
		return nil, &ParseError{Message: "config validation failed", Detail: err.Error()}
	}
	return &merged, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// layer is one evaluated config file. set records which top-level fields the
// file assigned, so an override only replaces what it names.
type layer struct {
	cfg Config
	set map[string]bool
}

func (l layer) applyTo(base Config) Config {
	out := base
	if l.set[luaFieldInterpreter] {
		out.Interpreter = l.cfg.Interpreter
	}
	if l.set[luaFieldBranchCommand] {
		out.BranchCommand = l.cfg.BranchCommand
	}
	if l.set[luaFieldBuildDomain] {
		out.BuildDomain = l.cfg.BuildDomain
	}
	if l.set[luaFieldProducts] {
		out.Products = l.cfg.Products
	}
	return out
}

func (p *Parser) evaluate(ctx context.Context, luaCode string) (layer, error) {
	L := newSandboxedVM(ctx)
	defer L.Close()

	if p.provider != nil {
		info, err := p.provider.Detect(ctx)
		if err != nil {
			return layer{}, fmt.Errorf("host detection failed: %w", err)
		}
		hostinfo.InjectHostTable(L, info)
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx != nil && ctx.Err() != nil {
			return layer{}, fmt.Errorf("config evaluation interrupted: %w", ctx.Err())
		}
		return layer{}, &ParseError{Message: "Lua error", Detail: err.Error()}
	}

	return extractLayer(L)
}

// extractLayer reads the global siteinfo table.
func extractLayer(L *lua.LState) (layer, error) {
	global := L.GetGlobal(luaGlobalSiteinfo)
	table, ok := global.(*lua.LTable)
	if !ok {
		return layer{}, &ParseError{
			Message: "missing or invalid '" + luaGlobalSiteinfo + "' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	l := layer{set: make(map[string]bool)}
	var err error

	stringFields := []struct {
		name string
		dst  *string
	}{
		{luaFieldInterpreter, &l.cfg.Interpreter},
		{luaFieldBranchCommand, &l.cfg.BranchCommand},
		{luaFieldBuildDomain, &l.cfg.BuildDomain},
	}
	for _, f := range stringFields {
		var present bool
		*f.dst, present, err = optionalString(table, f.name, luaGlobalSiteinfo)
		if err != nil {
			return layer{}, err
		}
		l.set[f.name] = present
	}

	productsVal := table.RawGetString(luaFieldProducts)
	switch v := productsVal.(type) {
	case *lua.LNilType:
	case *lua.LTable:
		l.cfg.Products, err = extractProducts(v)
		if err != nil {
			return layer{}, err
		}
		l.set[luaFieldProducts] = true
	default:
		return layer{}, fieldTypeError(luaGlobalSiteinfo+"."+luaFieldProducts, "array", productsVal)
	}

	return l, nil
}

// extractProducts reads the products array in order. Non-array keys are
// ignored.
func extractProducts(table *lua.LTable) ([]ProductSpec, error) {
	n := table.Len()
	products := make([]ProductSpec, 0, n)
	for i := 1; i <= n; i++ {
		where := fmt.Sprintf("products[%d]", i)
		entry, ok := table.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fieldTypeError(where, "table", table.RawGetInt(i))
		}
		spec, err := extractProduct(entry, where)
		if err != nil {
			return nil, err
		}
		products = append(products, spec)
	}
	return products, nil
}

func extractProduct(table *lua.LTable, where string) (ProductSpec, error) {
	var spec ProductSpec
	var kind string

	fields := []struct {
		name string
		dst  *string
	}{
		{luaFieldKey, &spec.Key},
		{luaFieldName, &spec.Name},
		{luaFieldKind, &kind},
		{luaFieldLocation, &spec.Location},
		{luaFieldBinary, &spec.Binary},
		{luaFieldVersionFile, &spec.VersionFile},
		{luaFieldCommand, &spec.Command},
	}
	for _, f := range fields {
		v, _, err := optionalString(table, f.name, where)
		if err != nil {
			return ProductSpec{}, err
		}
		*f.dst = v
	}
	spec.Kind = Kind(kind)

	if spec.Kind == KindGitFile && spec.VersionFile == "" {
		spec.VersionFile = DefaultVersionFile
	}

	switch args := table.RawGetString(luaFieldArgs).(type) {
	case *lua.LNilType:
	case *lua.LTable:
		for i := 1; i <= args.Len(); i++ {
			s, ok := args.RawGetInt(i).(lua.LString)
			if !ok {
				return ProductSpec{}, fieldTypeError(fmt.Sprintf("%s.args[%d]", where, i), "string", args.RawGetInt(i))
			}
			spec.Args = append(spec.Args, string(s))
		}
	default:
		return ProductSpec{}, fieldTypeError(where+"."+luaFieldArgs, "array", args)
	}

	return spec, nil
}

// optionalString reads a string field; present is false when the field is nil.
func optionalString(table *lua.LTable, name, where string) (value string, present bool, err error) {
	switch v := table.RawGetString(name).(type) {
	case *lua.LNilType:
		return "", false, nil
	case lua.LString:
		return string(v), true, nil
	default:
		return "", false, fieldTypeError(where+"."+name, "string", v)
	}
}

func fieldTypeError(field, want string, got lua.LValue) *ParseError {
	return &ParseError{
		Message: "invalid field " + field,
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
