package exec

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRealExecutor_Output(t *testing.T) {
	e := NewRealExecutor()
	out, err := e.Output(context.Background(), t.TempDir(), "echo", "hello")
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "hello" {
		t.Errorf("Output() = %q, want %q", got, "hello")
	}
}

func TestRealExecutor_Run_SeparatesStreams(t *testing.T) {
	e := NewRealExecutor()
	stdout, stderr, err := e.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != "out" {
		t.Errorf("stdout = %q, want %q", got, "out")
	}
	if got := strings.TrimSpace(string(stderr)); got != "err" {
		t.Errorf("stderr = %q, want %q", got, "err")
	}
}

func TestRealExecutor_Run_Dir(t *testing.T) {
	dir := t.TempDir()
	e := NewRealExecutor()
	stdout, _, err := e.Run(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Compare the basename to sidestep symlinked temp roots.
	if got := strings.TrimSpace(string(stdout)); filepath.Base(got) != filepath.Base(dir) {
		t.Errorf("pwd = %q, want directory %q", got, dir)
	}
}

func TestRealExecutor_CombinedOutput_Error(t *testing.T) {
	e := NewRealExecutor()
	out, err := e.CombinedOutput(context.Background(), t.TempDir(), "sh", "-c", "echo oops 1>&2; exit 3")
	if err == nil {
		t.Fatal("CombinedOutput() expected error for exit 3")
	}
	if !strings.Contains(string(out), "oops") {
		t.Errorf("CombinedOutput() = %q, want stderr captured", out)
	}
}

func TestFakeExecutor_ScriptedResult(t *testing.T) {
	scriptErr := errors.New("boom")
	f := &FakeExecutor{
		Results: map[string]FakeResult{
			Key("git", "status"): {Stdout: []byte("clean\n"), Stderr: []byte("warn\n"), Err: scriptErr},
		},
	}

	stdout, stderr, err := f.Run(context.Background(), "/repo", "git", "status")
	if string(stdout) != "clean\n" {
		t.Errorf("stdout = %q, want %q", stdout, "clean\n")
	}
	if string(stderr) != "warn\n" {
		t.Errorf("stderr = %q, want %q", stderr, "warn\n")
	}
	if !errors.Is(err, scriptErr) {
		t.Errorf("err = %v, want %v", err, scriptErr)
	}
}

func TestFakeExecutor_DefaultSuccess(t *testing.T) {
	f := &FakeExecutor{}
	out, err := f.Output(context.Background(), "/repo", "git", "rev-parse", "HEAD")
	if err != nil {
		t.Errorf("Output() error = %v, want nil", err)
	}
	if len(out) != 0 {
		t.Errorf("Output() = %q, want empty", out)
	}
}

func TestFakeExecutor_RecordsCalls(t *testing.T) {
	f := &FakeExecutor{}
	ctx := context.Background()
	_, _ = f.Output(ctx, "/a", "git", "status")
	_, _, _ = f.Run(ctx, "/b", "git", "add", ".")

	if len(f.Calls) != 2 {
		t.Fatalf("len(Calls) = %d, want 2", len(f.Calls))
	}
	if f.Calls[0].Dir != "/a" || f.Calls[0].Name != "git" || f.Calls[0].Args[0] != "status" {
		t.Errorf("first call = %+v", f.Calls[0])
	}
	if f.Calls[1].Dir != "/b" || f.Calls[1].Args[1] != "." {
		t.Errorf("second call = %+v", f.Calls[1])
	}
}

func TestFakeExecutor_CombinedOutput(t *testing.T) {
	f := &FakeExecutor{
		Results: map[string]FakeResult{
			Key("make"): {Stdout: []byte("building\n"), Stderr: []byte("warning\n")},
		},
	}
	out, err := f.CombinedOutput(context.Background(), "/proj", "make")
	if err != nil {
		t.Fatalf("CombinedOutput() error = %v", err)
	}
	if string(out) != "building\nwarning\n" {
		t.Errorf("CombinedOutput() = %q", out)
	}
}
