// Package git shells out to the git binary for the small set of repository
// operations the resolver needs: detecting a work tree, listing unmerged
// paths, and staging resolved files.
package git

import (
	"context"
	"fmt"
	"strings"

	rifterrors "github.com/zhubert/rift/internal/errors"
	pexec "github.com/zhubert/rift/internal/exec"
	"github.com/zhubert/rift/internal/logger"
)

// Result represents output from a git operation
type Result struct {
	Output string
	Error  error
	Done   bool
}

// GitService runs git commands through an injectable executor.
type GitService struct {
	executor pexec.CommandExecutor
}

// NewGitService returns a service backed by the real git binary.
func NewGitService() *GitService {
	return &GitService{executor: pexec.NewRealExecutor()}
}

// SetExecutor replaces the command executor, for tests.
func (g *GitService) SetExecutor(executor pexec.CommandExecutor) {
	g.executor = executor
}

// IsRepo reports whether path is inside a git work tree.
func (g *GitService) IsRepo(ctx context.Context, path string) bool {
	out, err := g.executor.Output(ctx, path, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Root returns the top-level directory of the work tree containing path.
func (g *GitService) Root(ctx context.Context, path string) (string, error) {
	out, err := g.executor.Output(ctx, path, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", rifterrors.GitCommandFailed("rev-parse --show-toplevel", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch returns the checked-out branch name, or the literal "HEAD"
// when detached.
func (g *GitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := g.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", rifterrors.GitCommandFailed("rev-parse --abbrev-ref HEAD", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListConflicted returns the paths with unmerged index entries, relative to
// the repo root. Empty when the merge is clean or no merge is in progress.
func (g *GitService) ListConflicted(ctx context.Context, repoPath string) ([]string, error) {
	out, err := g.executor.Output(ctx, repoPath, "git", "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, rifterrors.GitCommandFailed("diff --name-only --diff-filter=U", err)
	}

	paths := []string{}
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	logger.Debug("git: %d conflicted path(s) in %s", len(paths), repoPath)
	return paths, nil
}

// Stage stages paths in the repository, streaming progress over the
// returned channel. The final Result has Done set.
func (g *GitService) Stage(ctx context.Context, repoPath string, paths ...string) <-chan Result {
	ch := make(chan Result)

	go func() {
		defer close(ch)

		if len(paths) == 0 {
			ch <- Result{Output: "Nothing to stage", Done: true}
			return
		}

		ch <- Result{Output: fmt.Sprintf("Staging %d file(s)...", len(paths))}

		args := append([]string{"add", "--"}, paths...)
		out, err := g.executor.CombinedOutput(ctx, repoPath, "git", args...)
		if err != nil {
			logger.Error("git: stage failed in %s: %v", repoPath, err)
			ch <- Result{
				Output: strings.TrimSpace(string(out)),
				Error:  rifterrors.GitCommandFailed("add", err),
				Done:   true,
			}
			return
		}

		ch <- Result{Output: "Staged " + strings.Join(paths, ", "), Done: true}
	}()

	return ch
}
