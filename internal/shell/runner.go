package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewRunner creates a new shell runner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes command through the configured interpreter with both streams
// captured. It blocks until the child exits or ctx is done.
func (r *ExecRunner) Run(ctx context.Context, command string, opts RunOptions) (string, error) {
	interpreter, err := ResolveInterpreter(opts.Interpreter)
	if err != nil {
		return "", err
	}

	// #nosec G204 -- command strings come from the product catalog, not user input.
	cmd := exec.CommandContext(ctx, interpreter, "-c", command)
	cmd.Dir = opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), fmt.Errorf("run %q: %w", command, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), &ExitError{
			Command: command,
			Code:    exitErr.ExitCode(),
			Stdout:  stdout.Bytes(),
			Stderr:  stderr.Bytes(),
		}
	}

	return stdout.String(), fmt.Errorf("run %q: %w", command, err)
}
