// Package exec abstracts external command execution behind a small
// interface so packages that shell out (git, sessions) can be driven by a
// scripted executor in tests.
package exec

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// CommandExecutor runs external commands. All methods set the working
// directory to dir before running.
type CommandExecutor interface {
	// Run executes the command and returns stdout and stderr separately.
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
	// Output executes the command and returns its stdout.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	// CombinedOutput executes the command and returns stdout and stderr
	// interleaved, the way a terminal would show them.
	CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// RealExecutor executes commands with os/exec.
type RealExecutor struct{}

// NewRealExecutor returns an executor backed by os/exec.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

func (e *RealExecutor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (e *RealExecutor) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

func (e *RealExecutor) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Call records one command dispatched to a FakeExecutor.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// FakeResult is a scripted response for one command.
type FakeResult struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// FakeExecutor returns scripted results and records every call. Results are
// keyed by the command line ("name arg1 arg2 ..."); commands with no entry
// succeed with empty output. The zero value is usable. Not safe for
// concurrent use; tests drive it from one goroutine.
type FakeExecutor struct {
	Results map[string]FakeResult
	Calls   []Call
}

// Key builds the Results map key for a command line.
func Key(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *FakeExecutor) record(dir, name string, args []string) FakeResult {
	f.Calls = append(f.Calls, Call{Dir: dir, Name: name, Args: args})
	if r, ok := f.Results[Key(name, args...)]; ok {
		return r
	}
	return FakeResult{}
}

func (f *FakeExecutor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	r := f.record(dir, name, args)
	return r.Stdout, r.Stderr, r.Err
}

func (f *FakeExecutor) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r := f.record(dir, name, args)
	return r.Stdout, r.Err
}

func (f *FakeExecutor) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r := f.record(dir, name, args)
	return append(append([]byte{}, r.Stdout...), r.Stderr...), r.Err
}
