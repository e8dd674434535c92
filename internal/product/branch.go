package product

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/git"
)

// BranchResolver reports the branch checked out at a location.
type BranchResolver struct {
	Env      *Env
	Location string
}

// NewBranchResolver creates a BranchResolver.
func NewBranchResolver(env *Env, location string) *BranchResolver {
	return &BranchResolver{Env: env.withDefaults(), Location: location}
}

// Resolve implements Resolver.
func (r *BranchResolver) Resolve(ctx context.Context) string {
	env := r.Env
	dir := env.path(r.Location)

	if ok, err := afero.DirExists(env.Fs, dir); !ok {
		env.Logger.Debug("product location missing", "dir", dir, "error", err)
		return NotFound
	}

	branch, err := env.Branches.CurrentBranch(ctx, dir)
	switch {
	case err == nil:
		return strings.TrimSpace(branch)
	case errors.Is(err, git.ErrNotAGitRepo), errors.Is(err, git.ErrNoBranch):
		env.Logger.Debug("no branch", "dir", dir, "error", err)
		return NotAGitRepo
	default:
		env.Logger.Debug("branch lookup failed", "dir", dir, "error", err)
		return NotFound
	}
}

// present reports whether a resolved value carries information.
func present(v string) bool {
	return v != "" && v != NotFound
}

// BranchFileResolver pairs a version file with the branch at a location.
//
//	file     branch   result
//	present  present  "<file> (<branch>)"
//	absent   present  "no <filename> (<branch>)"
//	present  absent   ""
//	absent   absent   "not found"
type BranchFileResolver struct {
	Branch   *BranchResolver
	Filename string
}

// NewBranchFileResolver creates a BranchFileResolver.
func NewBranchFileResolver(env *Env, location, filename string) *BranchFileResolver {
	return &BranchFileResolver{Branch: NewBranchResolver(env, location), Filename: filename}
}

// Resolve implements Resolver.
func (r *BranchFileResolver) Resolve(ctx context.Context) string {
	branch := r.Branch.Resolve(ctx)
	file := r.readFile()

	switch {
	case present(file) && present(branch):
		return file + " (" + branch + ")"
	case present(branch):
		return "no " + r.Filename + " (" + branch + ")"
	case present(file):
		return ""
	default:
		return NotFound
	}
}

func (r *BranchFileResolver) readFile() string {
	env := r.Branch.Env
	path := env.path(r.Branch.Location, r.Filename)
	data, err := afero.ReadFile(env.Fs, path)
	if err != nil {
		env.Logger.Debug("version file unreadable", "path", path, "error", err)
		return NotFound
	}
	return strings.TrimSpace(string(data))
}

// BranchCommandResolver pairs the output of an extraction command, run at the
// location, with the branch there. A failed extraction reads as "not found";
// empty output is reported as is.
type BranchCommandResolver struct {
	Branch  *BranchResolver
	Command string
}

// NewBranchCommandResolver creates a BranchCommandResolver.
func NewBranchCommandResolver(env *Env, location, command string) *BranchCommandResolver {
	return &BranchCommandResolver{Branch: NewBranchResolver(env, location), Command: command}
}

// Resolve implements Resolver.
func (r *BranchCommandResolver) Resolve(ctx context.Context) string {
	branch := r.Branch.Resolve(ctx)
	extracted := r.extract(ctx)

	if present(branch) {
		return extracted + " (" + branch + ")"
	}
	return extracted
}

func (r *BranchCommandResolver) extract(ctx context.Context) string {
	env := r.Branch.Env
	dir := env.path(r.Branch.Location)
	out, err := env.run(ctx, r.Command, dir)
	if err != nil {
		env.Logger.Debug("extraction command failed", "dir", dir, "command", r.Command, "error", err)
		return NotFound
	}
	return strings.TrimSpace(out)
}
