package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/rift/internal/conflict"
	"github.com/zhubert/rift/internal/document"
	rifterrors "github.com/zhubert/rift/internal/errors"
	"github.com/zhubert/rift/internal/git"
	"github.com/zhubert/rift/internal/logger"
)

// gitService is the git backend used by this package.
// It can be swapped for testing via SetGitService.
var gitService = git.NewGitService()

// SetGitService sets the git backend used by this package.
// This is primarily used for testing.
func SetGitService(g *git.GitService) {
	gitService = g
}

// GetGitService returns the current git backend.
func GetGitService() *git.GitService {
	return gitService
}

// FileState is one file in a resolve session.
type FileState struct {
	Path    string
	Doc     *document.Document
	Store   *conflict.Store
	Applied bool
	Staged  bool
}

// Progress returns the resolved and total conflict counts for the file.
func (f *FileState) Progress() (resolved, total int) {
	return f.Store.ResolvedCount(), f.Store.Len()
}

// Remaining returns how many conflicts are still unresolved.
func (f *FileState) Remaining() int {
	return f.Store.Len() - f.Store.ResolvedCount()
}

// Session is one conflict resolution sitting over an ordered set of files.
type Session struct {
	ID        string
	ShortID   string
	RepoRoot  string
	Files     []*FileState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a session from the given file paths, keeping their order.
// Paths are stored absolute. Files without conflict markers are skipped; a
// session needs at least one conflicted file.
func New(ctx context.Context, paths []string) (*Session, error) {
	id := uuid.New().String()
	logger.Debug("session: creating %s for %d path(s)", id[:8], len(paths))

	s := &Session{
		ID:        id,
		ShortID:   id[:8],
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, path := range paths {
		path, err := filepath.Abs(path)
		if err != nil {
			return nil, rifterrors.E(rifterrors.Op("session.New"), rifterrors.KindInvalid,
				fmt.Sprintf("cannot resolve path %s", path), err)
		}

		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}

		conflicts := conflict.Parse(doc.Buffer())
		if len(conflicts) == 0 {
			logger.Warn("session: %s has no conflict markers, skipping", path)
			continue
		}

		s.Files = append(s.Files, &FileState{
			Path:  path,
			Doc:   doc,
			Store: conflict.NewStore(conflicts),
		})
	}

	if len(s.Files) == 0 {
		return nil, rifterrors.E(rifterrors.Op("session.New"), rifterrors.KindInvalid,
			"no conflict markers found in the given files")
	}

	// Work tree detection is best effort; resolving files outside a repo
	// still works, they just cannot be staged.
	firstDir := filepath.Dir(s.Files[0].Path)
	if gitService.IsRepo(ctx, firstDir) {
		root, err := gitService.Root(ctx, firstDir)
		if err != nil {
			logger.Warn("session: repo root lookup failed: %v", err)
		} else {
			s.RepoRoot = root
		}
	}

	logger.Info("session: created %s with %d file(s), repo root %q", s.ShortID, len(s.Files), s.RepoRoot)
	return s, nil
}

// File returns the state for path. Relative paths are resolved the same way
// New resolves them.
func (s *Session) File(path string) (*FileState, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, f := range s.Files {
		if f.Path == path {
			return f, nil
		}
	}
	return nil, rifterrors.SessionFileNotFound(path)
}

// Progress returns the resolved and total conflict counts across all files.
func (s *Session) Progress() (resolved, total int) {
	for _, f := range s.Files {
		r, t := f.Progress()
		resolved += r
		total += t
	}
	return resolved, total
}

// AllResolved reports whether every conflict in every file has a resolution.
func (s *Session) AllResolved() bool {
	for _, f := range s.Files {
		if !f.Store.AllResolved() {
			return false
		}
	}
	return len(s.Files) > 0
}

// Resolve records a choice for one conflict in one file.
func (s *Session) Resolve(path, conflictID string, choice conflict.Choice) error {
	f, err := s.File(path)
	if err != nil {
		return err
	}
	if !f.Store.Resolve(conflictID, choice) {
		return rifterrors.E(rifterrors.Op("session.Resolve"), rifterrors.KindNotFound,
			fmt.Sprintf("conflict %s not found in %s", conflictID, path))
	}
	s.touch()
	logger.Debug("session: %s resolved %s in %s as %s", s.ShortID, conflictID, path, choice)
	return nil
}

// ResolveCustom records hand-edited replacement text for one conflict.
func (s *Session) ResolveCustom(path, conflictID, text string) error {
	f, err := s.File(path)
	if err != nil {
		return err
	}
	if !f.Store.ResolveCustom(conflictID, text) {
		return rifterrors.E(rifterrors.Op("session.Resolve"), rifterrors.KindNotFound,
			fmt.Sprintf("conflict %s not found in %s", conflictID, path))
	}
	s.touch()
	logger.Debug("session: %s custom-resolved %s in %s", s.ShortID, conflictID, path)
	return nil
}

// Reload re-reads path from disk and re-parses its conflicts. Any resolutions
// recorded for the file are discarded along with its applied/staged state.
func (s *Session) Reload(path string) (*FileState, error) {
	f, err := s.File(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(f.Path)
	if err != nil {
		return nil, err
	}
	f.Doc = doc
	f.Store = conflict.NewStore(conflict.Parse(doc.Buffer()))
	f.Applied = false
	f.Staged = false
	s.touch()
	logger.Debug("session: %s reloaded %s, %d conflict(s)", s.ShortID, f.Path, f.Store.Len())
	return f, nil
}

// Apply writes the resolved content of path back to disk and stages it when
// the session is inside a git work tree. Every conflict in the file must be
// resolved first.
func (s *Session) Apply(ctx context.Context, path string) error {
	f, err := s.File(path)
	if err != nil {
		return err
	}
	if !f.Store.AllResolved() {
		return rifterrors.UnresolvedConflicts(path, f.Remaining())
	}

	f.Doc.SetBuffer(f.Store.BuildResolvedContent(f.Doc.Buffer()))
	if err := f.Doc.Save(); err != nil {
		return err
	}
	f.Applied = true
	s.touch()
	logger.Info("session: %s applied %s", s.ShortID, path)

	if s.RepoRoot != "" {
		s.stage(ctx, f)
	}
	return nil
}

// ApplyAll applies every file in the session, stopping at the first error.
func (s *Session) ApplyAll(ctx context.Context) error {
	for _, f := range s.Files {
		if f.Applied {
			continue
		}
		if err := s.Apply(ctx, f.Path); err != nil {
			return err
		}
	}
	return nil
}

// stage stages one applied file. Failures are logged, not fatal; the
// resolved file is already on disk and the user can stage by hand.
func (s *Session) stage(ctx context.Context, f *FileState) {
	rel, err := filepath.Rel(s.RepoRoot, f.Path)
	if err != nil {
		logger.Warn("session: cannot relativize %s against %s: %v", f.Path, s.RepoRoot, err)
		return
	}

	for result := range gitService.Stage(ctx, s.RepoRoot, rel) {
		if result.Error != nil {
			logger.Warn("session: staging %s failed: %v", rel, result.Error)
			return
		}
	}
	f.Staged = true
	logger.Debug("session: %s staged %s", s.ShortID, rel)
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
