package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Invocation describes one child process.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandLine renders the invocation as its argv.
func (i Invocation) CommandLine() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Binary)
	return append(argv, i.Args...)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExitError reports a delegate that ran but exited unsuccessfully.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithStdio overrides the streams handed to the child. Nil values keep the
// process defaults.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(c *Client) {
		if stdin != nil {
			c.stdin = stdin
		}
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// Client starts delegate tools through a package runner.
type Client struct {
	binary string
	prefix []string
	exec   Executor
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New constructs a client from the runner argv, e.g. ["npx"] or
// ["npx", "--yes"].
func New(argv []string, opts ...Option) (*Client, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("runner binary required")
	}
	client := &Client{
		binary: strings.TrimSpace(argv[0]),
		prefix: append([]string(nil), argv[1:]...),
		exec:   commandExecutor{},
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the runner executable name.
func (c *Client) Binary() string {
	return c.binary
}

// Invocation builds the child process description for tool and args.
func (c *Client) Invocation(dir, tool string, args []string) Invocation {
	full := make([]string, 0, len(c.prefix)+len(args)+1)
	full = append(full, c.prefix...)
	full = append(full, tool)
	full = append(full, args...)
	return Invocation{
		Binary: c.binary,
		Args:   full,
		Dir:    dir,
		Stdin:  c.stdin,
		Stdout: c.stdout,
		Stderr: c.stderr,
	}
}

// Run starts tool through the runner in dir and waits for it to finish.
func (c *Client) Run(ctx context.Context, dir, tool string, args []string) error {
	return c.exec.Run(ctx, c.Invocation(dir, tool, args))
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 1 {
			code = 1
		}
		return &ExitError{Command: strings.Join(inv.CommandLine(), " "), Code: code, Err: err}
	}
	return fmt.Errorf("start %s: %w", inv.Binary, err)
}
