package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestExecCapturesOutputAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs unavailable on windows")
	}
	dir := t.TempDir()
	script := writeScript(t, dir, "tool", `echo "out $1"; echo "bad input" >&2; exit 3`)

	result, err := Exec{}.Run(context.Background(), script, "arg")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
	if result.Success() {
		t.Fatal("expected failure result")
	}
	if strings.TrimSpace(result.Stdout) != "out arg" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
	if strings.TrimSpace(result.Stderr) != "bad input" {
		t.Fatalf("unexpected stderr %q", result.Stderr)
	}
}

func TestExecDoesNotInterpretShellMetacharacters(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs unavailable on windows")
	}
	dir := t.TempDir()
	script := writeScript(t, dir, "echoarg", `printf '%s' "$1"`)

	arg := "a; rm -rf $HOME && `id`"
	result, err := Exec{}.Run(context.Background(), script, arg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Stdout != arg {
		t.Fatalf("argument was altered: %q", result.Stdout)
	}
}

func TestExecMissingBinary(t *testing.T) {
	if _, err := (Exec{}).Run(context.Background(), "clearly-not-present-binary"); err == nil {
		t.Fatal("expected error for missing binary")
	}
	if _, err := (Exec{}).Run(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestTailBufferKeepsMostRecentBytes(t *testing.T) {
	buf := &tailBuffer{limit: 8}
	_, _ = buf.Write([]byte("abcdef"))
	_, _ = buf.Write([]byte("ghijk"))
	if got := buf.String(); got != "defghijk" {
		t.Fatalf("unexpected tail %q", got)
	}
	_, _ = buf.Write([]byte("0123456789"))
	if got := buf.String(); got != "23456789" {
		t.Fatalf("unexpected tail after oversized write %q", got)
	}
}
