package product

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/diag"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/git"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

// Resolver determines one product's version. Resolve always returns a
// displayable string and never fails.
type Resolver interface {
	Resolve(ctx context.Context) string
}

// Env carries the collaborators resolvers use. Zero fields get defaults from
// withDefaults.
type Env struct {
	// SiteRoot is the directory product locations are relative to.
	SiteRoot string

	// Interpreter runs every command. Empty means /bin/bash.
	Interpreter string

	Runner   shell.Runner
	Fs       afero.Fs
	Modes    ModeQuery
	Branches git.BranchReader
	Diag     diag.Channel
	Logger   diag.Logger
}

func (e *Env) withDefaults() *Env {
	var out Env
	if e != nil {
		out = *e
	}
	if out.Runner == nil {
		out.Runner = shell.NewRunner()
	}
	if out.Fs == nil {
		out.Fs = afero.NewOsFs()
	}
	if out.Modes == nil {
		out.Modes = FsModeQuery{Fs: out.Fs}
	}
	if out.Branches == nil {
		out.Branches = git.RepoReader{}
	}
	if out.Diag == nil {
		out.Diag = diag.Discard{}
	}
	if out.Logger == nil {
		out.Logger = diag.NopLogger()
	}
	return &out
}

// path joins elem onto the site root.
func (e *Env) path(elem ...string) string {
	return filepath.Join(append([]string{e.SiteRoot}, elem...)...)
}

func (e *Env) run(ctx context.Context, command, dir string) (string, error) {
	return e.Runner.Run(ctx, command, shell.RunOptions{Dir: dir, Interpreter: e.Interpreter})
}
