package product

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

// BinaryResolver runs <location>/<binary> <args...> from the site root and
// reports its trimmed output.
type BinaryResolver struct {
	Env      *Env
	Location string
	Binary   string
	Args     []string
}

// NewBinaryResolver creates a BinaryResolver.
func NewBinaryResolver(env *Env, location, binary string, args ...string) *BinaryResolver {
	return &BinaryResolver{Env: env.withDefaults(), Location: location, Binary: binary, Args: args}
}

// Path returns the absolute binary path.
func (r *BinaryResolver) Path() string {
	return r.Env.path(r.Location, r.Binary)
}

// relPath is the binary path as shown to the operator.
func (r *BinaryResolver) relPath() string {
	return filepath.Join(r.Location, r.Binary)
}

// Command returns the shell command that reports the version.
func (r *BinaryResolver) Command() string {
	parts := make([]string, 0, len(r.Args)+1)
	parts = append(parts, shell.Quote(r.Path()))
	for _, arg := range r.Args {
		parts = append(parts, shell.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// Resolve implements Resolver.
func (r *BinaryResolver) Resolve(ctx context.Context) string {
	env := r.Env
	path := r.Path()
	rel := r.relPath()

	gate := Gate{Query: env.Modes, Logger: env.Logger}
	if err := gate.Check(path); err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			env.Logger.Debug("binary not executable", "path", path, "category", CategoryPermissionDenied)
			return NoExecPermission
		}
		env.Diag.Warn(fmt.Sprintf("other problem: %s: %v", rel, err))
		return NotFound
	}

	out, err := env.run(ctx, r.Command(), env.SiteRoot)
	if err == nil {
		return strings.TrimSpace(out)
	}

	var exitErr *shell.ExitError
	if !errors.As(err, &exitErr) {
		env.Logger.Debug("binary invocation failed", "path", path, "category", CategoryOtherRuntime, "error", err)
		env.Diag.Warn(fmt.Sprintf("other problem: %s: %v", rel, err))
		return NotFound
	}

	c := Classify(path, exitErr)
	env.Logger.Debug("binary exited non-zero", "path", path, "code", exitErr.Code, "category", c.Category)
	switch c.Category {
	case CategoryIncompatibleRuntime:
		env.Diag.Error("possibly, wrong RHEL version: " + rel)
	case CategoryUnclassified:
		env.Diag.Fail("failed to detect cgi version: " + rel)
	}
	return c.Message
}

var buildStamp = regexp.MustCompile(`\bversion ([\d.]+) (\d\d) (\d\d) (\d{4}) \d\d:\d\d:\d\d`)

// NormalizeBuildStamp rewrites "version 1.2.3 01 05 2024 10:11:12" as
// "1.2.3 (2024-01-05)". Anything else is returned unchanged.
func NormalizeBuildStamp(s string) string {
	return buildStamp.ReplaceAllString(s, "$1 ($4-$2-$3)")
}

// DatedBinaryResolver is a BinaryResolver whose output carries a build stamp.
type DatedBinaryResolver struct {
	*BinaryResolver
}

// NewDatedBinaryResolver creates a DatedBinaryResolver.
func NewDatedBinaryResolver(env *Env, location, binary string, args ...string) *DatedBinaryResolver {
	return &DatedBinaryResolver{BinaryResolver: NewBinaryResolver(env, location, binary, args...)}
}

// Resolve implements Resolver.
func (r *DatedBinaryResolver) Resolve(ctx context.Context) string {
	return NormalizeBuildStamp(r.BinaryResolver.Resolve(ctx))
}
