// Package exec runs external license tools and captures their output.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

const (
	// ExitTimeout is reported when the context deadline killed the process.
	ExitTimeout = 124
	// ExitNotFound is reported when the binary could not be started.
	ExitNotFound = 127
)

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = 2 * time.Second

// Result holds the outcome of one tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
	ExitCode int
}

// Run executes name with args in dir and blocks until it exits.
// A non-zero exit is reported through both ExitCode and the returned error.
func Run(ctx context.Context, name string, args []string, dir string) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = ExitTimeout
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = ExitNotFound
	case errors.As(err, new(*fs.PathError)):
		res.ExitCode = ExitNotFound
	default:
		res.ExitCode = 1
	}
	return res, &Error{Name: name, Result: res, Err: err}
}

// Error describes a failed invocation, including the tool's stderr.
type Error struct {
	Name   string
	Result Result
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed (exit code %d)", e.Name, e.Result.ExitCode)
	switch e.Result.ExitCode {
	case ExitTimeout:
		msg = fmt.Sprintf("%s timed out", e.Name)
	case ExitNotFound:
		msg = fmt.Sprintf("%s could not be started: %v", e.Name, e.Err)
	}
	if s := strings.TrimSpace(e.Result.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
