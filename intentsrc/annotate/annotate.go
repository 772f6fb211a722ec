// Package annotate appends the messages of the commits that shaped each component to its content.
//
// Three recency strategies are supported. RECENT uses blame at the revision
// pointer. ALL uses the whole history of the path, or of the line range at
// method granularity. RECENT_CLUSTERED promotes recent commits that belong to
// a short-lived branch to the members of that branch found by ALL.
package annotate

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fusix/intentsrc/intentsrc/cluster"
	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/pkg/logger"
	"github.com/fusix/intentsrc/intentsrc/relevance"
	"github.com/fusix/intentsrc/intentsrc/vcs"
)

type Opts struct {
	// Filtered drops noise commits before joining messages.
	Filtered bool

	// LineTracking selects the ALL algorithm at method granularity.
	LineTracking LineTracking

	// Workers bounds the number of files annotated in parallel. Defaults to runtime.NumCPU.
	Workers int

	// Logger defaults to the logger of the repo.
	Logger logger.Logger
}

// Stats are counters accumulated over every AnnotateAll call.
type Stats struct {
	Components      int64
	Failures        int64
	EmptyPromotions int64
	SkippedHashes   int64
}

type stats struct {
	components      int64
	failures        int64
	emptyPromotions int64
	skippedHashes   int64
}

// Annotator is bound to one repository handle. The cluster lookup is built by New
// and only read afterwards.
type Annotator struct {
	repo     *vcs.Repo
	opts     Opts
	logger   logger.Logger
	clusters cluster.Lookup

	ancestry *memo
	lines    *memo

	stats stats
}

// New builds the cluster lookup from the parent graph of the revision pointer.
func New(ctx context.Context, repo *vcs.Repo, opts Opts) (*Annotator, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = repo.Logger()
	}
	s := &Annotator{}
	s.repo = repo
	s.opts = opts
	s.logger = opts.Logger
	s.ancestry = newMemo()
	s.lines = newMemo()

	start := time.Now()
	parents, err := repo.Parents(ctx)
	if err != nil {
		return nil, err
	}
	s.clusters = cluster.Build(parents, repo.Head())
	s.logger.Debug("annotate: built cluster lookup", "commits", len(parents), "clusters", s.clusters.Len(), "d", time.Since(start))
	return s, nil
}

// Clusters returns the lookup built by New.
func (s *Annotator) Clusters() cluster.Lookup {
	return s.clusters
}

func (s *Annotator) Stats() Stats {
	return Stats{
		Components:      atomic.LoadInt64(&s.stats.components),
		Failures:        atomic.LoadInt64(&s.stats.failures),
		EmptyPromotions: atomic.LoadInt64(&s.stats.emptyPromotions),
		SkippedHashes:   atomic.LoadInt64(&s.stats.skippedHashes),
	}
}

// AnnotateAll appends the reduced commit messages to the content of every component.
//
// Components that cannot be annotated are reported together in a *PartialError
// after the rest of the batch is done. Cancelling ctx aborts the batch.
func (s *Annotator) AnnotateAll(ctx context.Context, components component.Set, recency Recency, granularity Granularity) error {
	st, err := NewStrategy(recency, granularity)
	if err != nil {
		return err
	}
	groups := components.ByFile()
	start := time.Now()
	s.logger.Info("annotate: started", "strategy", st, "components", components.Len(), "files", len(groups))

	var failuresMu sync.Mutex
	var failures []*AnnotationError
	fail := func(path string, err error) {
		atomic.AddInt64(&s.stats.failures, 1)
		s.logger.Warn("annotate: component failed", "path", path, "err", err)
		failuresMu.Lock()
		failures = append(failures, &AnnotationError{Path: path, Err: err})
		failuresMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			return s.annotateFile(gctx, st, group, fail)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("annotate: completed", "strategy", st, "components", components.Len(), "failures", len(failures), "d", time.Since(start))
	if len(failures) != 0 {
		sortFailures(failures)
		return &PartialError{Failures: failures, Total: components.Len()}
	}
	return nil
}

// annotateFile returns an error only when the whole batch must stop.
func (s *Annotator) annotateFile(ctx context.Context, st Strategy, group component.FileGroup, fail func(string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var blame *vcs.BlameResult
	if st.NeedsBlame() {
		res, err := s.repo.Blame(ctx, group.FilePath)
		if err != nil {
			if isAbort(ctx, err) {
				return err
			}
			for _, c := range group.Components {
				fail(c.Path(), err)
			}
			return nil
		}
		blame = &res
	}
	for _, c := range group.Components {
		commits, err := s.commits(ctx, st, blame, c)
		if err != nil {
			if isAbort(ctx, err) {
				return err
			}
			fail(c.Path(), err)
			continue
		}
		c.AddContent(relevance.Reduce(commits, s.mode(st)))
		atomic.AddInt64(&s.stats.components, 1)
	}
	return nil
}

func (s *Annotator) commits(ctx context.Context, st Strategy, blame *vcs.BlameResult, c *component.Component) ([]vcs.Commit, error) {
	switch st.Recency {
	case Recent:
		return s.recent(ctx, st.Granularity, *blame, c)
	case All:
		return s.all(ctx, st.Granularity, c)
	case RecentClustered:
		return s.hybrid(ctx, st.Granularity, *blame, c)
	}
	return nil, ErrUnsupportedRecency
}

func (s *Annotator) mode(st Strategy) relevance.Mode {
	if !s.opts.Filtered {
		return relevance.Unfiltered
	}
	if st.Recency == RecentClustered {
		return relevance.FilteredNoMerges
	}
	return relevance.Filtered
}

// resolve maps ids to commits, skipping ids that do not name a reachable commit.
func (s *Annotator) resolve(ctx context.Context, path string, ids []string) ([]vcs.Commit, error) {
	res := make([]vcs.Commit, 0, len(ids))
	for _, id := range ids {
		c, ok, err := s.repo.Commit(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			atomic.AddInt64(&s.stats.skippedHashes, 1)
			s.logger.Warn("annotate: skipping unresolved commit", "path", path, "commit", id)
			continue
		}
		res = append(res, c)
	}
	return res, nil
}

func isAbort(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, vcs.ErrClosed)
}
