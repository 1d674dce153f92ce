package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

type recordingExecutor struct {
	calls []Invocation
	err   error
}

func (r *recordingExecutor) Run(_ context.Context, inv Invocation) error {
	r.calls = append(r.calls, inv)
	return r.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
	if _, err := New([]string{"  "}); err == nil {
		t.Fatal("expected error for blank binary")
	}
}

func TestClientBuildsInvocationWithRunnerPrefix(t *testing.T) {
	rec := &recordingExecutor{}
	client, err := New([]string{"npx", "--yes"}, WithExecutor(rec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Run(context.Background(), "/work", "@pika/pack", []string{"build", "--extra"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(rec.calls))
	}
	got := rec.calls[0]
	if got.Dir != "/work" {
		t.Fatalf("unexpected dir: %q", got.Dir)
	}
	want := []string{"npx", "--yes", "@pika/pack", "build", "--extra"}
	if !reflect.DeepEqual(got.CommandLine(), want) {
		t.Fatalf("unexpected command line: got %q want %q", got.CommandLine(), want)
	}
	if got.Stdin != os.Stdin || got.Stdout != os.Stdout || got.Stderr != os.Stderr {
		t.Fatal("expected process stdio to be inherited by default")
	}
}

func TestClientPropagatesExecutorError(t *testing.T) {
	boom := errors.New("boom")
	client, err := New([]string{"npx"}, WithExecutor(&recordingExecutor{err: boom}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Run(context.Background(), "", "np", nil); !errors.Is(err, boom) {
		t.Fatalf("expected executor error, got %v", err)
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandExecutorInheritsStreamsAndDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}
	bin := t.TempDir()
	work := t.TempDir()
	script := writeScript(t, bin, "fake-npx", "read line\necho \"$line $*\"\npwd\necho warn >&2\n")

	var stdout, stderr bytes.Buffer
	client, err := New([]string{script}, WithStdio(strings.NewReader("hello\n"), &stdout, &stderr))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Run(context.Background(), work, "@pika/web", []string{"--optimize"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if lines[0] != "hello @pika/web --optimize" {
		t.Fatalf("unexpected echoed args: %q", lines[0])
	}
	resolvedWork, _ := filepath.EvalSymlinks(work)
	resolvedPwd, _ := filepath.EvalSymlinks(lines[1])
	if resolvedPwd != resolvedWork {
		t.Fatalf("expected child to run in %q, got %q", work, lines[1])
	}
	if strings.TrimSpace(stderr.String()) != "warn" {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestCommandExecutorReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}
	script := writeScript(t, t.TempDir(), "fail", "exit 3\n")
	client, err := New([]string{script}, WithStdio(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = client.Run(context.Background(), "", "np", nil)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.Code)
	}
	if !strings.HasSuffix(exitErr.Command, " np") {
		t.Fatalf("unexpected command in error: %q", exitErr.Command)
	}
}

func TestCommandExecutorReportsSpawnFailure(t *testing.T) {
	client, err := New([]string{filepath.Join(t.TempDir(), "missing-runner")})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Run(context.Background(), "", "np", nil)
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("expected spawn error, not exit error: %v", err)
	}
	if !strings.Contains(err.Error(), "start ") {
		t.Fatalf("unexpected error: %v", err)
	}
}
