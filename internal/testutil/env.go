// Package testutil provides fixtures for testing siteinfo in isolation.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

// SetupTestEnv isolates a test from the operator's environment: no override
// config is picked up and color output is disabled.
//
// The returned directory is a fresh site root under t.TempDir(), so callers
// don't need to manually clean up.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	t.Setenv("SITEINFO_CONFIG", "")
	t.Setenv("NO_COLOR", "1")

	root := filepath.Join(t.TempDir(), "site")
	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatalf("failed to create site root %s: %v", root, err)
	}
	return root
}

// WriteExecutable writes a bash script named name under dir (created as
// needed) and returns its path. The script body follows the shebang line.
func WriteExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()
	return writeScript(t, dir, name, body, 0o755)
}

// WriteScriptMode is WriteExecutable with an explicit file mode, for
// permission fixtures.
func WriteScriptMode(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()
	return writeScript(t, dir, name, body, mode)
}

func writeScript(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	content := "#!/bin/bash\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to write script %s: %v", path, err)
	}
	// WriteFile honours umask; force the requested mode.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Response is a canned result for FakeRunner.
type Response struct {
	Out string
	Err error
}

// Call records one FakeRunner invocation.
type Call struct {
	Command string
	Opts    shell.RunOptions
}

// FakeRunner is a shell.Runner that answers from a table keyed by command.
// Unknown commands fail with a non-zero ExitError and empty stderr.
type FakeRunner struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls []Call
}

// Run implements shell.Runner.
func (f *FakeRunner) Run(ctx context.Context, command string, opts shell.RunOptions) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Command: command, Opts: opts})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	if resp, ok := f.Responses[command]; ok {
		return resp.Out, resp.Err
	}
	return "", &shell.ExitError{Command: command, Code: 127}
}

// Calls returns the recorded invocations in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}
