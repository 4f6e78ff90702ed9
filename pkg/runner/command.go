package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; "" uses the current one.
	Dir string
	// Env holds KEY=VALUE pairs added to the current environment.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner runs commands to completion.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// waitDelay bounds how long Run waits for output pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// ExecRunner runs commands as child processes. Each command gets its own
// process group; cancelling ctx kills the group.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	logging.LogCommand(c.Name, c.Args)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		docErr := errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", c.Name).
			WithDetail("command", c.Name).
			WithDetail("args", c.Args)
		if exitErr, ok := err.(*exec.ExitError); ok {
			docErr.WithDetail("exitCode", exitErr.ExitCode())
		}
		return docErr
	}
	return nil
}
