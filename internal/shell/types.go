package shell

import (
	"context"
	"fmt"
	"strings"
)

// ShellType represents a supported command interpreter
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellSh represents a POSIX sh
	ShellSh ShellType = "sh"
	// ShellUnknown represents an unknown or unsupported interpreter
	ShellUnknown ShellType = "unknown"
)

// DefaultInterpreter is used when RunOptions.Interpreter is empty.
const DefaultInterpreter = "/bin/bash"

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the interpreter accepts a command string via -c
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellSh:
		return true
	default:
		return false
	}
}

// RunOptions configures a single command execution.
type RunOptions struct {
	// Dir is the working directory. Empty means the current process directory.
	Dir string
	// Interpreter is the shell binary path. Empty means DefaultInterpreter.
	Interpreter string
}

// Runner is the interface for shell command execution.
type Runner interface {
	// Run executes command and returns its captured standard output.
	// A non-zero exit is reported as *ExitError.
	Run(ctx context.Context, command string, opts RunOptions) (string, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stdout  []byte
	Stderr  []byte
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.Code)
	if stderr := strings.TrimSpace(string(e.Stderr)); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// StderrText returns the captured standard error as text, or "" when absent.
func (e *ExitError) StderrText() string {
	if e == nil || e.Stderr == nil {
		return ""
	}
	return string(e.Stderr)
}

// UnsupportedShellError represents an interpreter that cannot run command strings
type UnsupportedShellError struct {
	Interpreter string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported interpreter: %s (supported: bash, zsh, sh)", e.Interpreter)
}
