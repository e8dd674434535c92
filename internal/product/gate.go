package product

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/diag"
)

// ErrPermissionDenied is returned by Gate.Check when the owner cannot execute
// the binary.
var ErrPermissionDenied = errors.New("no execute permission")

// UnparsablePermissionsError reports a mode string that is not ten
// characters long.
type UnparsablePermissionsError struct {
	Path string
	Mode string
}

func (e *UnparsablePermissionsError) Error() string {
	return fmt.Sprintf("cannot parse permissions of %s: %q", e.Path, e.Mode)
}

// ModeQuery returns the symbolic permission string of a path, like
// "-rwxr-xr-x".
type ModeQuery interface {
	Mode(path string) (string, error)
}

// FsModeQuery implements ModeQuery on an afero filesystem.
type FsModeQuery struct {
	Fs afero.Fs
}

// Mode stats path and renders its mode with StatMode.
func (q FsModeQuery) Mode(path string) (string, error) {
	fi, err := q.Fs.Stat(path)
	if err != nil {
		return "", err
	}
	return StatMode(fi.Mode()), nil
}

// StatMode renders m in the ten-character form of `stat -c %A`: a file type
// character followed by the nine permission characters. Setuid and setgid
// show as s or S in the execute position, sticky as t or T.
func StatMode(m fs.FileMode) string {
	buf := []byte("----------")
	switch {
	case m&fs.ModeDir != 0:
		buf[0] = 'd'
	case m&fs.ModeSymlink != 0:
		buf[0] = 'l'
	case m&fs.ModeNamedPipe != 0:
		buf[0] = 'p'
	case m&fs.ModeSocket != 0:
		buf[0] = 's'
	case m&fs.ModeCharDevice != 0:
		buf[0] = 'c'
	case m&fs.ModeDevice != 0:
		buf[0] = 'b'
	}

	const rwx = "rwxrwxrwx"
	for i := range 9 {
		if m&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		}
	}

	special(buf, 3, m&fs.ModeSetuid != 0, 's')
	special(buf, 6, m&fs.ModeSetgid != 0, 's')
	special(buf, 9, m&fs.ModeSticky != 0, 't')
	return string(buf)
}

// special marks a set special bit at position i: lower case when the execute
// bit underneath is set, upper case when it is not.
func special(buf []byte, i int, set bool, c byte) {
	if !set {
		return
	}
	if buf[i] == 'x' {
		buf[i] = c
		return
	}
	buf[i] = c - 'a' + 'A'
}

// executable reports whether a permission character grants execute.
func executable(c byte) bool {
	return c == 'x' || c == 's'
}

// Gate decides whether a binary may be invoked.
type Gate struct {
	Query  ModeQuery
	Logger diag.Logger
}

// Check returns nil when path may be invoked.
//
// A failed query does not block: the invocation that follows reports a more
// specific reason. An owner position of x or s allows execution; S does not.
// The group execute bit is only logged.
func (g Gate) Check(path string) error {
	mode, err := g.Query.Mode(path)
	if err != nil {
		g.logger().Debug("permission query failed, deferring to invocation", "path", path, "error", err)
		return nil
	}

	if len(mode) != 10 {
		return &UnparsablePermissionsError{Path: path, Mode: mode}
	}

	if !executable(mode[3]) {
		return fmt.Errorf("%s (%s): %w", path, mode, ErrPermissionDenied)
	}
	if !executable(mode[6]) {
		g.logger().Debug("group execute bit not set", "path", path, "mode", mode)
	}
	return nil
}

func (g Gate) logger() diag.Logger {
	if g.Logger == nil {
		return diag.NopLogger()
	}
	return g.Logger
}
