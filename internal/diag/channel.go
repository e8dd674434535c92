// Package diag provides the operator-facing diagnostic channel and the
// structured debug logger used across siteinfo.
//
// The channel prints short leveled lines (warn, error, fail) meant for a human
// at a terminal. It is not structured logging: structured entries go through
// Logger, which is silent unless --verbose is set.
package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity of an operator diagnostic.
type Level int

const (
	LevelWarn Level = iota
	LevelError
	LevelFail
)

// String returns the prefix used when printing a diagnostic of this level.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Channel accepts short operator diagnostics.
type Channel interface {
	Warn(msg string)
	Error(msg string)
	Fail(msg string)
}

// Console writes colorized diagnostics to a writer, usually stderr.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	warn *color.Color
	red  *color.Color
}

// NewConsole creates a Console writing to out. When noColor is true, output
// is plain text regardless of terminal detection.
func NewConsole(out io.Writer, noColor bool) *Console {
	warn := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	if noColor {
		warn.DisableColor()
		red.DisableColor()
	}
	return &Console{out: out, warn: warn, red: red}
}

func (c *Console) Warn(msg string)  { c.print(LevelWarn, msg) }
func (c *Console) Error(msg string) { c.print(LevelError, msg) }
func (c *Console) Fail(msg string)  { c.print(LevelFail, msg) }

func (c *Console) print(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	painter := c.red
	if level == LevelWarn {
		painter = c.warn
	}
	_, _ = painter.Fprintln(c.out, fmt.Sprintf("%s: %s", level, msg))
}

// Entry is one recorded diagnostic.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps diagnostics in memory. It is used by tests and by callers
// that want to render diagnostics after a report.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Warn(msg string)  { r.add(LevelWarn, msg) }
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }
func (r *Recorder) Fail(msg string)  { r.add(LevelFail, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of the recorded diagnostics in arrival order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Discard is a Channel that drops everything.
type Discard struct{}

func (Discard) Warn(string)  {}
func (Discard) Error(string) {}
func (Discard) Fail(string)  {}
