// Package git reads the checked-out branch of a site directory, either in
// process through go-git or through an operator-configured shell command.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

// Common Git errors
var (
	ErrNotAGitRepo = errors.New("not a git repository")
	ErrNoBranch    = errors.New("not on a branch")
	ErrInvalidRepo = errors.New("invalid git repository")
)

// NoBranchOutput is what the show-current-branch helper prints when the
// directory is outside a repository or HEAD is detached.
const NoBranchOutput = "No git repository here, not on a branch"

// BranchReader reports the current branch of the repository containing dir.
// Implementations return ErrNotAGitRepo or ErrNoBranch when there is no
// branch to report.
type BranchReader interface {
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// Client reads repository state using go-git.
type Client struct {
	repoPath string // Path inside the git repository
}

// NewClient creates a new Git client for the given path. The repository is
// discovered by walking up from repoPath.
func NewClient(repoPath string) *Client {
	return &Client{
		repoPath: repoPath,
	}
}

// CurrentBranch returns the short name of the branch HEAD points to.
// An unborn branch (no commits yet) is still reported by name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	// Check context cancellation
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(c.repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return "", ErrNotAGitRepo
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRepo, err.Error())
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}

	if head.Type() == plumbing.SymbolicReference {
		if target := head.Target(); target.IsBranch() {
			return target.Short(), nil
		}
		return "", fmt.Errorf("%w: HEAD points to %s", ErrNoBranch, head.Target())
	}

	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return "", fmt.Errorf("%w: detached at %s", ErrNoBranch, hash)
}

// RepoReader implements BranchReader with go-git.
type RepoReader struct{}

// CurrentBranch opens the repository containing dir and reads its branch.
func (RepoReader) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return NewClient(dir).CurrentBranch(ctx)
}

// CommandReader implements BranchReader by running a shell command in dir
// and taking its trimmed output as the branch name.
type CommandReader struct {
	Runner      shell.Runner
	Command     string
	Interpreter string
}

// CurrentBranch runs the configured command. Output equal to NoBranchOutput
// is reported as ErrNotAGitRepo.
func (r CommandReader) CurrentBranch(ctx context.Context, dir string) (string, error) {
	if r.Command == "" {
		return "", errors.New("branch command is empty")
	}

	out, err := r.Runner.Run(ctx, r.Command, shell.RunOptions{Dir: dir, Interpreter: r.Interpreter})
	if err != nil {
		return "", fmt.Errorf("branch command: %w", err)
	}

	branch := strings.TrimSpace(out)
	if branch == NoBranchOutput {
		return "", ErrNotAGitRepo
	}
	return branch, nil
}
