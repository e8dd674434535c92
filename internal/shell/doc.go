// Package shell runs operator-controlled command lines through a shell
// interpreter and captures their output.
//
// Every command string is interpreted by the shell, so callers are responsible
// for quoting interpolated values with Quote. Commands come from the product
// catalog and site paths, never from raw user input.
//
// # Failures
//
// A command that exits non-zero produces an *ExitError carrying the exit code
// and both captured streams. Anything else that prevents the command from
// running (missing interpreter, missing working directory, cancelled context)
// is returned as a wrapped error, so callers can tell "the program ran and
// complained" apart from "the program never ran".
//
// # Blocking
//
// Run blocks until the child exits. No timeout is applied unless the caller's
// context carries a deadline; a hung child hangs the caller.
//
// # Example Usage
//
//	runner := shell.NewRunner()
//	out, err := runner.Run(ctx, shell.Quote(binPath)+" -v", shell.RunOptions{Dir: siteRoot})
//	var exitErr *shell.ExitError
//	if errors.As(err, &exitErr) {
//	    // inspect exitErr.Stderr
//	}
package shell
