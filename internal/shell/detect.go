package shell

import (
	"path/filepath"
	"strings"
)

// ResolveInterpreter returns the interpreter path to use for a command.
// An empty path resolves to DefaultInterpreter. Any other path must name a
// shell that accepts -c.
func ResolveInterpreter(path string) (string, error) {
	if path == "" {
		return DefaultInterpreter, nil
	}
	if !parseShellFromPath(path).IsValid() {
		return "", &UnsupportedShellError{Interpreter: path}
	}
	return path, nil
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - /bin/sh -> sh
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "sh", "dash":
		return ShellSh
	default:
		return ShellUnknown
	}
}

// Quote single-quotes s for safe interpolation into a command string.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("/._-+=:,@%", r)
}
