package kasa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandFailed matches every error returned by CLIExecutor.Execute.
var ErrCommandFailed = errors.New("kasa command failed")

// InvocationError means the tool could not be started at all.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to execute kasa command via %q: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool { return target == ErrCommandFailed }

// CommandError means the tool ran and exited with a non-zero status.
type CommandError struct {
	Args     []string // masked
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %v failed (exit %d): %s", e.Args, e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }
