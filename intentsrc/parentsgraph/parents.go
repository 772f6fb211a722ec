// Package parentsgraph reads the parent graph of every commit reachable from a revision.
package parentsgraph

import (
	"context"
	"io"
	"time"

	"github.com/fusix/intentsrc/intentsrc/gitexec"
	"github.com/fusix/intentsrc/intentsrc/parentsgraph/parentsp"
	"github.com/fusix/intentsrc/intentsrc/pkg/logger"
)

type Graph struct {
	opts    Opts
	Parents map[string][]string
}

type Opts struct {
	RepoDir string

	// Revision the graph is read from. Defaults to HEAD.
	Revision string

	Logger logger.Logger
}

func New(opts Opts) *Graph {
	s := &Graph{}
	s.opts = opts
	if s.opts.Logger == nil {
		s.opts.Logger = logger.NewNopLogger()
	}
	return s
}

func (s *Graph) Read(ctx context.Context) error {
	start := time.Now()
	s.opts.Logger.Info("parentsgraph: starting reading")
	r, err := s.gitLogParents(ctx)
	if err != nil {
		return err
	}
	pp := parentsp.New(r)
	res, perr := pp.Run()
	cerr := r.Close()
	if perr != nil {
		return perr
	}
	if cerr != nil {
		return cerr
	}
	s.Parents = res
	s.opts.Logger.Info("parentsgraph: completed reading", "commits", len(res), "d", time.Since(start))
	return nil
}

func (s *Graph) gitLogParents(ctx context.Context) (io.ReadCloser, error) {
	rev := s.opts.Revision
	if rev == "" {
		rev = "HEAD"
	}
	args := []string{
		"log",
		"--no-abbrev-commit",
		"--pretty=format:%H@%P",
		rev,
		"--",
	}
	return gitexec.ExecPiped(ctx, gitexec.DefaultCommand, s.opts.RepoDir, args)
}
