// Package kasa drives a smart plug through the python-kasa command line tool.
package kasa

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/metrics"
)

// MaskToken replaces credential-looking arguments in logs.
const MaskToken = "[MASKED]"

const defaultTool = "uv"

// Credentials are loaded once at startup and shared read-only.
type Credentials struct {
	Host     string
	Username string
	Password string
	Dir      string // working directory of the kasa project
}

// Executor runs one kasa subcommand against the configured device.
type Executor interface {
	Execute(ctx context.Context, args ...string) error
}

// Output is what a finished process produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts a process in dir. A non-nil error means the process could
// not be started; a non-zero exit is reported through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, dir, name string, args []string) (Output, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args []string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

// CLIExecutor invokes `<tool> run kasa --host .. --username .. --password .. <args>`.
// Calls are not serialized; concurrent callers each get their own process.
type CLIExecutor struct {
	creds  Credentials
	tool   string
	runner Runner
	log    *logger.Logger
}

// Option customizes a CLIExecutor.
type Option func(*CLIExecutor)

// WithRunner swaps the process runner, used by tests.
func WithRunner(r Runner) Option {
	return func(e *CLIExecutor) { e.runner = r }
}

// WithTool overrides the launcher binary (default "uv").
func WithTool(tool string) Option {
	return func(e *CLIExecutor) {
		if tool != "" {
			e.tool = tool
		}
	}
}

func NewCLIExecutor(creds Credentials, log *logger.Logger, opts ...Option) *CLIExecutor {
	if log == nil {
		log = logger.Nop()
	}
	e := &CLIExecutor{
		creds:  creds,
		tool:   defaultTool,
		runner: execRunner{},
		log:    log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs a single attempt and reports failure with stderr attached.
func (e *CLIExecutor) Execute(ctx context.Context, args ...string) error {
	masked := MaskArgs(args)
	e.log.Infow("kasa_exec", "args", masked)

	out, err := e.runner.Run(ctx, e.creds.Dir, e.tool, e.argv(args))
	if err != nil {
		e.log.Errorw("kasa_invoke_failed", "tool", e.tool, "err", err)
		err = &InvocationError{Tool: e.tool, Err: err}
		metrics.ObserveCommand(args, err)
		return err
	}

	stdout := string(out.Stdout)
	stderr := string(out.Stderr)
	e.log.Infow("kasa_stdout", "stdout", stdout)
	if stderr != "" {
		e.log.Errorw("kasa_stderr", "stderr", stderr)
	}

	if out.ExitCode != 0 {
		err := &CommandError{Args: masked, ExitCode: out.ExitCode, Stderr: stderr}
		metrics.ObserveCommand(args, err)
		return err
	}
	metrics.ObserveCommand(args, nil)
	return nil
}

func (e *CLIExecutor) argv(args []string) []string {
	argv := make([]string, 0, 8+len(args))
	argv = append(argv,
		"run", "kasa",
		"--host", e.creds.Host,
		"--username", e.creds.Username,
		"--password", e.creds.Password,
	)
	return append(argv, args...)
}

// MaskArgs returns a copy of args where every token containing "username"
// or "password" (any case) is replaced by MaskToken.
func MaskArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		lower := strings.ToLower(a)
		if strings.Contains(lower, "username") || strings.Contains(lower, "password") {
			out[i] = MaskToken
			continue
		}
		out[i] = a
	}
	return out
}
