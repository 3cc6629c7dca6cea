// Package runner spawns external commands (package managers, git, npm pack).
//
// Runner is the process-spawn seam used by probes, the reconciliation engine,
// and the external template unpacker. ExecRunner is the os/exec implementation;
// runnertest.Recorder is the test double.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner runs external commands.
type Runner interface {
	// Output runs the command in dir and returns its captured standard output.
	// A non-zero exit status is returned as a *CommandError.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs the command in dir, streaming its output.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// CommandError reports a command that could not start or exited non-zero.
type CommandError struct {
	// Command is the rendered command line.
	Command string

	// ExitCode is the process exit status, or -1 when the process never ran.
	ExitCode int

	// Stderr holds captured standard error when available.
	Stderr string

	// NotFound is set when the executable is missing from PATH.
	NotFound bool

	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	var b strings.Builder
	b.WriteString(e.Command)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " exited with status %d", e.ExitCode)
	} else {
		fmt.Fprintf(&b, " failed: %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		b.WriteString(": ")
		b.WriteString(stderr)
	}
	if e.NotFound {
		fmt.Fprintf(&b, "\n💡 Command '%s' not found. Please install it and try again", strings.Fields(e.Command)[0])
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Options configures an ExecRunner.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
	env    []string

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New creates an ExecRunner. A nil opts streams to the process stdout/stderr.
func New(opts *Options) *ExecRunner {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &ExecRunner{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		commandFunc: exec.CommandContext,
	}
}

// Output runs a command and captures its standard output.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, dir, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), commandError(name, args, stderr.String(), err)
	}
	return stdout.String(), nil
}

// Run runs a command, streaming output to the configured writers.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := r.command(ctx, dir, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return commandError(name, args, "", err)
	}
	return nil
}

func (r *ExecRunner) command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	cmd := r.commandFunc(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(r.env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, r.env...)
	}
	return cmd
}

// String renders a command line for logs.
func String(name string, args ...string) string {
	parts := append([]string{name}, args...)
	return strings.Join(parts, " ")
}

func commandError(name string, args []string, stderr string, err error) *CommandError {
	ce := &CommandError{
		Command:  String(name, args...),
		ExitCode: -1,
		Stderr:   stderr,
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ce.ExitCode = exitErr.ExitCode()
	}
	ce.NotFound = isCommandNotFound(err)
	return ce
}

// isCommandNotFound checks if an error indicates a command was not found.
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}
