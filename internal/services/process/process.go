// Package process runs external commands with an explicit argument vector and
// captures their exit status and output.
//
// Commands are never run through a shell. A non-zero exit is reported through
// Result.ExitCode with a nil error so callers decide how to classify it; an
// error is returned only when the command could not be started or waited on.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxCapture bounds how much stdout/stderr is retained per stream. Encoders
// print progress continuously, so only the tail is kept.
const maxCapture = 64 * 1024

// Result captures the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Spawner abstracts command execution for testability.
type Spawner interface {
	Run(ctx context.Context, binary string, args ...string) (Result, error)
}

// Exec runs commands on the host via os/exec.
type Exec struct{}

// Run starts binary with args and waits for it to exit.
func (Exec) Run(ctx context.Context, binary string, args ...string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return Result{}, errors.New("process: empty command")
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout := &tailBuffer{limit: maxCapture}
	stderr := &tailBuffer{limit: maxCapture}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	return result, fmt.Errorf("run %s: %w", binary, err)
}

var _ Spawner = Exec{}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= t.limit {
		t.buf.Reset()
		t.buf.Write(p[len(p)-t.limit:])
		return n, nil
	}
	if overflow := t.buf.Len() + len(p) - t.limit; overflow > 0 {
		t.buf.Next(overflow)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
