package main

import (
	"context"
	"fmt"
	"io"

	"pika/internal/cliargs"
	"pika/internal/config"
	"pika/internal/dispatch"
	"pika/internal/logging"
	"pika/internal/output"
)

type commandContext struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// extra options appended after the defaults; tests use it to stub the
	// executor and resolver.
	options []dispatch.Option
}

func newCommandContext(stdin io.Reader, stdout, stderr io.Writer, opts ...dispatch.Option) *commandContext {
	return &commandContext{stdin: stdin, stdout: stdout, stderr: stderr, options: opts}
}

// dispatch parses args once, loads the configuration named by --config (or
// the default locations), and runs the dispatcher. A broken configuration only
// fails runs that start a delegate; the rest fall back to defaults.
func (c *commandContext) dispatch(ctx context.Context, args []string) (output.Log, error) {
	parsed, err := cliargs.Parse(args)
	if err != nil {
		return nil, err
	}

	cfg, err := c.loadConfig(parsed)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg, c.stderr)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithStdio(c.stdin, c.stdout, c.stderr),
	}
	d, err := dispatch.New(cfg, append(opts, c.options...)...)
	if err != nil {
		return nil, err
	}
	return d.RunParsed(ctx, parsed)
}

func (c *commandContext) loadConfig(parsed cliargs.Parsed) (*config.Config, error) {
	cfg, _, _, err := config.Load(parsed.Config, parsed.Cwd)
	if err == nil {
		return cfg, nil
	}
	if dispatch.Delegates(parsed) {
		return nil, fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(c.stderr, "warn: ignoring configuration: %v\n", err)
	defaults := config.Default()
	return &defaults, nil
}
