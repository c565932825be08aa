// Package executor runs a batch work item under a spawned shell and
// reports its exit status.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// Shell is the interpreter batch items are executed under.
const Shell = "/bin/bash"

// Identity is a worker's rank within its group, and the group's size. It is
// exposed to a running script as WORKER_RANK and WORKER_SIZE.
type Identity struct {
	Rank int
	Size int
}

// Run spawns a fresh Shell, writes the Identity preamble followed by
// script, waits for the child, and returns its exit status. A nonzero
// script exit is a normal return value, not an error -- Run only returns an
// error if the shell itself could not be spawned, which is a fatal worker
// error.
func Run(ctx context.Context, script []byte, id Identity) (int, error) {
	cmd := exec.CommandContext(ctx, Shell, "-l")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("open shell stdin; error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn shell; error: %w", err)
	}

	// A failed write means the shell stopped reading its stdin (for example,
	// the script exited early); the shell's exit status is still the result.
	if _, err := fmt.Fprintf(stdin, "export WORKER_RANK=%d WORKER_SIZE=%d\n", id.Rank, id.Size); err == nil {
		stdin.Write(script)
	}
	stdin.Close()

	return exitCode(cmd.Wait()), nil
}

// RunHook runs script (a path to a script file, not a body) without the
// Identity preamble, for the prolog/epilog hooks.
func RunHook(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, Shell, "-l", path)
	return exitCode(cmd.Run()), nil
}

// exitCode extracts a shell's low 8-bit exit code from the error returned
// by (*exec.Cmd).Wait or Run. A nonzero code from a normally exited child
// is not an error condition here -- it is the script's reported status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1
	}

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return exitErr.ExitCode()
	}
	return status.ExitStatus()
}
