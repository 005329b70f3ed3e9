package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrDirectoryRead = errors.New("directory read error")
	ErrProcess       = errors.New("process error")
	ErrEmptyOutput   = errors.New("empty output")
	ErrIO            = errors.New("io error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes job context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, job, operation, message string, err error) error {
	detail := buildDetail(job, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must stop the whole run rather than a single item.
func IsFatal(err error) bool {
	return errors.Is(err, ErrToolNotFound) ||
		errors.Is(err, ErrDirectoryRead) ||
		errors.Is(err, ErrConfiguration)
}

// Kind returns the short classification label for err, used in per-item output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolNotFound):
		return "tool_not_found"
	case errors.Is(err, ErrDirectoryRead):
		return "directory_read"
	case errors.Is(err, ErrProcess):
		return "process"
	case errors.Is(err, ErrEmptyOutput):
		return "empty_output"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "io"
	}
}

// ProcessError describes an external command that exited non-zero.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	stderr := lastLine(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, stderr)
}

func (e *ProcessError) Unwrap() error { return ErrProcess }

func lastLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}

func buildDetail(job, operation, message string) string {
	parts := make([]string, 0, 3)
	if job = strings.TrimSpace(job); job != "" {
		parts = append(parts, job)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
