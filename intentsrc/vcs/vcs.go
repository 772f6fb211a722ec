// Package vcs is the set of git capabilities the annotation engine consumes:
// resolve a revision, enumerate blobs, blame a file, walk ancestry of a path,
// run native line history and diff two commits restricted to a path.
// All of them are anchored at the revision pointer resolved by Open.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fusix/intentsrc/intentsrc/commitmeta"
	"github.com/fusix/intentsrc/intentsrc/gitexec"
	"github.com/fusix/intentsrc/intentsrc/parentsgraph"
	"github.com/fusix/intentsrc/intentsrc/pkg/logger"
)

var (
	// ErrUnresolvedRevision is returned by Open when the revision does not name a commit.
	ErrUnresolvedRevision = errors.New("revision does not resolve to a commit")

	// ErrBlameUnavailable is returned when blame cannot be computed for a path at the revision.
	ErrBlameUnavailable = errors.New("blame unavailable")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("repository handle closed")
)

// Commit is an immutable commit record.
type Commit = commitmeta.Commit

type Opts struct {
	// RepoDir is the working tree or bare repository directory.
	RepoDir string

	// Revision is resolved once by Open. Defaults to HEAD.
	Revision string

	// GitCommand defaults to git on PATH.
	GitCommand string

	Logger logger.Logger
}

// Repo is a read-only handle to a repository at a fixed revision. It is safe for concurrent use.
type Repo struct {
	opts   Opts
	head   string
	closed atomic.Bool

	commitsMu sync.Mutex
	commits   map[string]Commit
}

// Open resolves the revision. No Repo is returned if it does not resolve.
func Open(ctx context.Context, opts Opts) (*Repo, error) {
	if opts.Revision == "" {
		opts.Revision = "HEAD"
	}
	if opts.GitCommand == "" {
		opts.GitCommand = gitexec.DefaultCommand
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if err := gitexec.Prepare(ctx, opts.GitCommand, opts.RepoDir); err != nil {
		return nil, err
	}
	head, err := gitexec.RevParse(ctx, opts.GitCommand, opts.RepoDir, opts.Revision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrUnresolvedRevision, opts.Revision, err)
	}
	s := &Repo{}
	s.opts = opts
	s.head = head
	s.opts.Logger.Debug("vcs: opened", "repo", opts.RepoDir, "revision", opts.Revision, "head", head)
	return s, nil
}

// Head is the resolved revision pointer.
func (s *Repo) Head() string {
	return s.head
}

func (s *Repo) Revision() string {
	return s.opts.Revision
}

func (s *Repo) Dir() string {
	return s.opts.RepoDir
}

func (s *Repo) Logger() logger.Logger {
	return s.opts.Logger
}

// Close releases the handle. It is safe to call more than once.
func (s *Repo) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Repo) check() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (s *Repo) git(ctx context.Context, args ...string) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return gitexec.Output(ctx, s.opts.GitCommand, s.opts.RepoDir, args...)
}

// Parents returns the parent graph of every commit reachable from the revision pointer.
func (s *Repo) Parents(ctx context.Context) (map[string][]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	pg := parentsgraph.New(parentsgraph.Opts{
		RepoDir:  s.opts.RepoDir,
		Revision: s.head,
		Logger:   s.opts.Logger,
	})
	if err := pg.Read(ctx); err != nil {
		return nil, err
	}
	return pg.Parents, nil
}

// Commit returns the record for id. ok is false when id is not reachable from the revision pointer.
func (s *Repo) Commit(ctx context.Context, id string) (c Commit, ok bool, _ error) {
	if err := s.loadCommits(ctx); err != nil {
		return c, false, err
	}
	s.commitsMu.Lock()
	c, ok = s.commits[id]
	s.commitsMu.Unlock()
	if ok {
		return c, true, nil
	}
	// not in the table, may still exist if it was reached through a rename path
	pr := commitmeta.New(s.opts.RepoDir, commitmeta.Opts{Revisions: []string{id}, MaxCount: 1})
	res, err := pr.RunSlice(ctx)
	if ctx.Err() != nil {
		return c, false, ctx.Err()
	}
	if err != nil || len(res) == 0 {
		return c, false, nil
	}
	return res[0], true, nil
}

func (s *Repo) loadCommits(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	s.commitsMu.Lock()
	defer s.commitsMu.Unlock()
	if s.commits != nil {
		return nil
	}
	start := time.Now()
	pr := commitmeta.New(s.opts.RepoDir, commitmeta.Opts{Revision: s.head})
	res, err := pr.RunMap(ctx)
	if err != nil {
		return fmt.Errorf("could not load commits: %w", err)
	}
	s.commits = res
	s.opts.Logger.Debug("vcs: loaded commits", "n", len(res), "d", time.Since(start))
	return nil
}

// WalkAncestry returns the commits reachable from the revision pointer that modified path, newest first.
func (s *Repo) WalkAncestry(ctx context.Context, path string, followRenames bool) ([]Commit, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	pr := commitmeta.New(s.opts.RepoDir, commitmeta.Opts{
		Revision: s.head,
		Path:     path,
		Follow:   followRenames,
	})
	return pr.RunSlice(ctx)
}
