package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"pika/internal/cliargs"
	"pika/internal/config"
	"pika/internal/deps"
	"pika/internal/logging"
	"pika/internal/manifest"
	"pika/internal/output"
	"pika/internal/runner"
)

// Decision is the routing result for one command.
type Decision struct {
	Recognized bool
	// Recommend names the package the tip suggests installing; empty means
	// no tip.
	Recommend string
}

// Resolver reports whether a package is installed relative to a directory.
type Resolver func(fromDir, name string) (deps.LocalPackage, bool)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithStdio sets the streams used for printed records and handed to delegate
// tools.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(d *Dispatcher) {
		if stdin != nil {
			d.stdin = stdin
		}
		if stdout != nil {
			d.stdout = stdout
		}
		if stderr != nil {
			d.stderr = stderr
		}
	}
}

// WithExecutor replaces the process executor (primarily for tests).
func WithExecutor(exec runner.Executor) Option {
	return func(d *Dispatcher) {
		d.executor = exec
	}
}

// WithManifest replaces the source of the version printed by --version.
func WithManifest(src manifest.Source) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.manifest = src
		}
	}
}

// WithResolver replaces local-install detection.
func WithResolver(resolve Resolver) Option {
	return func(d *Dispatcher) {
		if resolve != nil {
			d.resolve = resolve
		}
	}
}

// Dispatcher routes pika invocations. It is immutable after New.
type Dispatcher struct {
	cfg      *config.Config
	runner   *runner.Client
	executor runner.Executor
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	manifest manifest.Source
	resolve  Resolver
}

// New constructs a Dispatcher from configuration.
func New(cfg *config.Config, opts ...Option) (*Dispatcher, error) {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	d := &Dispatcher{
		cfg:      cfg,
		logger:   logging.NewNop(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		manifest: manifest.Self,
		resolve:  deps.ResolvePackage,
	}
	for _, opt := range opts {
		opt(d)
	}

	argv, err := cfg.RunnerArgv()
	if err != nil {
		return nil, err
	}
	runnerOpts := []runner.Option{runner.WithStdio(d.stdin, d.stdout, d.stderr)}
	if d.executor != nil {
		runnerOpts = append(runnerOpts, runner.WithExecutor(d.executor))
	}
	d.runner, err = runner.New(argv, runnerOpts...)
	if err != nil {
		return nil, err
	}
	d.logger = logging.NewComponentLogger(d.logger, "dispatch")
	return d, nil
}

// runContext is the state owned by one Run.
type runContext struct {
	id     string
	dryRun bool
	cwd    string
	sink   *output.Sink
	logger *slog.Logger
}

// Run parses args (program name excluded) and dispatches them.
func (d *Dispatcher) Run(ctx context.Context, args []string) (output.Log, error) {
	parsed, err := cliargs.Parse(args)
	if err != nil {
		return nil, err
	}
	return d.RunParsed(ctx, parsed)
}

// RunParsed dispatches an already parsed invocation. The returned log holds
// every record printed, including when an error is returned.
func (d *Dispatcher) RunParsed(ctx context.Context, parsed cliargs.Parsed) (output.Log, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rc := d.newRun(ctx, parsed)
	rc.logger.Debug("dispatch started",
		logging.String(logging.FieldCommand, parsed.Command),
		logging.Strings("args", parsed.CommandArgs),
		logging.Bool("dry_run", rc.dryRun),
		logging.String("cwd", rc.cwd),
	)
	err := d.dispatch(ctx, rc, parsed)
	return rc.sink.Log(), err
}

func (d *Dispatcher) newRun(ctx context.Context, parsed cliargs.Parsed) *runContext {
	id := uuid.NewString()
	return &runContext{
		id:     id,
		dryRun: parsed.DryRun,
		cwd:    parsed.Cwd,
		sink:   output.NewSink(d.stdout),
		logger: logging.WithContext(logging.WithRunID(ctx, id), d.logger),
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, rc *runContext, parsed cliargs.Parsed) error {
	if parsed.Version {
		return d.printVersion(rc)
	}
	if parsed.Help || parsed.Command == string(CommandHelp) {
		return rc.sink.Print(usage())
	}

	decision, err := d.runCommand(ctx, rc, parsed)
	if err != nil {
		return err
	}
	if !decision.Recognized {
		if err := rc.sink.Print(fmt.Sprintf("Command %s not recognized.", parsed.Command)); err != nil {
			return err
		}
		return rc.sink.Print(usage())
	}
	if decision.Recommend != "" {
		return rc.sink.Print(
			output.Highlight("TIP!"),
			"Speed up the command next time by installing",
			output.Bold(decision.Recommend),
			"locally.",
		)
	}
	return nil
}

func (d *Dispatcher) printVersion(rc *runContext) error {
	pkg, err := d.manifest()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	return rc.sink.Print(pkg.Version)
}

// runCommand probes for a local install, then runs the delegate.
func (d *Dispatcher) runCommand(ctx context.Context, rc *runContext, parsed cliargs.Parsed) (Decision, error) {
	r, ok := lookup(parsed.Command)
	if !ok {
		rc.logger.Debug("command not recognized", logging.String(logging.FieldCommand, parsed.Command))
		return Decision{}, nil
	}

	local, installed := d.resolve(rc.cwd, r.probe)
	rc.logger.Debug("local install probe",
		logging.String("package", r.probe),
		logging.Bool("installed", installed),
		logging.String("dir", local.Dir),
		logging.String("version", local.Version),
	)

	if err := d.invoke(ctx, rc, r.tool, r.args(parsed, d.cfg)); err != nil {
		return Decision{Recognized: true}, err
	}

	decision := Decision{Recognized: true}
	if !installed {
		decision.Recommend = r.recommend
	}
	return decision, nil
}

func (d *Dispatcher) invoke(ctx context.Context, rc *runContext, tool string, args []string) error {
	inv := d.runner.Invocation(rc.cwd, tool, args)
	if rc.dryRun {
		argv := inv.CommandLine()
		values := make([]any, len(argv))
		for i, v := range argv {
			values[i] = v
		}
		return rc.sink.Print(values...)
	}

	if d.executor == nil {
		status := deps.CheckBinaries([]deps.Requirement{{
			Name:    "package runner",
			Command: d.runner.Binary(),
		}})[0]
		if !status.Available {
			return fmt.Errorf("run %s: %s %s", tool, status.Name, status.Detail)
		}
	}

	rc.logger.Info("running delegate", logging.Strings("argv", inv.CommandLine()))
	err := d.runner.Run(ctx, rc.cwd, tool, args)
	var exitErr *runner.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		rc.logger.Debug("delegate failed", logging.Int("exit_code", exitErr.Code))
		return err
	default:
		return fmt.Errorf("run %s: %w", tool, err)
	}
}
