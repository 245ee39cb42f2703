package cmake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command is a single subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner launches commands and waits for them.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// LaunchError means the process could not be started at all.
type LaunchError struct {
	Command Command
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Command.Name, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the process ran and exited unsuccessfully.
type ExitError struct {
	Command Command
	// Code is the exit status, or -1 when the process was killed by a signal.
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
}

// ExecRunner runs commands with os/exec. Nil streams are connected to the
// null device.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts cmd and blocks until it exits.
func (r ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	err := c.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd, Code: exitErr.ExitCode()}
	}
	return &LaunchError{Command: cmd, Err: err}
}
