// Package corpus builds, searches and deletes the index of one repository.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fusix/intentsrc/intentsrc/annotate"
	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/extract"
	"github.com/fusix/intentsrc/intentsrc/fileinfo"
	"github.com/fusix/intentsrc/intentsrc/index"
	"github.com/fusix/intentsrc/intentsrc/vcs"
)

var ErrNotImplemented = errors.New("not implemented")

// Metadata keys written by Create.
const (
	MetaRunID       = "run_id"
	MetaRevision    = "revision"
	MetaHead        = "head"
	MetaGranularity = "granularity"
	MetaSource      = "source"
	MetaRecency     = "recency"
	MetaCreatedAt   = "created_at"
)

// Report summarizes one Create run.
type Report struct {
	RunID    string
	Revision string
	Head     string

	Files        int
	SkippedFiles int
	// ExtractFailures are files that could not be parsed.
	ExtractFailures int
	Components      int
	// Licenses are the detected license files as "path: name (confidence)".
	Licenses []string
	// AnnotationFailures are components written without their commit messages.
	AnnotationFailures int

	Annotation annotate.Stats
	Duration   time.Duration
}

// Corpus is safe for concurrent use. Separate corpora share no state.
type Corpus struct {
	cfg       Config
	extractor *extract.Extractor
}

// New applies defaults and validates cfg.
func New(cfg Config) (*Corpus, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Corpus{}
	s.cfg = cfg
	s.extractor = extract.New()
	return s, nil
}

func (s *Corpus) Config() Config {
	return s.cfg
}

// Create replaces the index content with the components of the repository at the configured revision.
func (s *Corpus) Create(ctx context.Context) (rep Report, rerr error) {
	start := time.Now()
	log := s.cfg.Logger
	rep.RunID = uuid.New().String()
	rep.Revision = s.cfg.Revision

	log.Info("creating corpus", "repo", s.cfg.SrcDir, "run", rep.RunID)

	repo, err := vcs.Open(ctx, vcs.Opts{
		RepoDir:  s.cfg.SrcDir,
		Revision: s.cfg.Revision,
		Logger:   log,
	})
	if err != nil {
		return rep, err
	}
	defer repo.Close()
	rep.Head = repo.Head()

	idx, err := index.Open(s.cfg.IndexDir, s.cfg.Source)
	if err != nil {
		return rep, err
	}
	defer func() {
		if err := idx.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	set, err := s.extractAll(ctx, repo, &rep)
	if err != nil {
		return rep, err
	}
	rep.Components = set.Len()

	if s.cfg.Source.IncludesHistory() {
		if err := s.annotate(ctx, repo, set, &rep); err != nil {
			return rep, err
		}
	}

	if err := idx.DeleteAll(ctx); err != nil {
		return rep, err
	}
	if err := idx.WriteAll(ctx, set); err != nil {
		return rep, err
	}
	meta := [][2]string{
		{MetaRunID, rep.RunID},
		{MetaRevision, rep.Revision},
		{MetaHead, rep.Head},
		{MetaGranularity, s.cfg.Granularity.String()},
		{MetaSource, s.cfg.Source.String()},
		{MetaRecency, s.cfg.Recency.String()},
		{MetaCreatedAt, time.Now().UTC().Format(time.RFC3339)},
	}
	for _, kv := range meta {
		if err := idx.SetMeta(ctx, kv[0], kv[1]); err != nil {
			return rep, err
		}
	}

	rep.Duration = time.Since(start)
	log.Info("created corpus", "repo", s.cfg.SrcDir, "components", rep.Components, "failures", rep.AnnotationFailures, "d", rep.Duration)
	return rep, nil
}

func (s *Corpus) extractAll(ctx context.Context, repo *vcs.Repo, rep *Report) (component.Set, error) {
	log := s.cfg.Logger
	set := component.NewSet()

	blobs, err := repo.Blobs(ctx)
	if err != nil {
		return set, err
	}
	info := fileinfo.New(extract.Languages...)
	withContent := s.cfg.Source.IncludesCode()

	for _, b := range blobs {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		rep.Files++
		content, err := repo.ReadBlob(ctx, b.Path)
		if err != nil {
			return set, err
		}
		fi, err := info.GetInfo(fileinfo.InfoArgs{FilePath: b.Path, Content: content})
		if err != nil {
			return set, err
		}
		if fi.Skipped() {
			rep.SkippedFiles++
			if fi.License != nil {
				rep.Licenses = append(rep.Licenses, b.Path+": "+fi.License.String())
			}
			log.Debug("skipping file", "path", b.Path, "reason", fi.SkipReason)
			continue
		}
		res, err := s.extractor.Extract(ctx, content, b.Path, fi.Language, s.cfg.Granularity, withContent)
		if ctx.Err() != nil {
			return set, ctx.Err()
		}
		if errors.Is(err, extract.ErrMethodsUnavailable) {
			return set, err
		}
		if err != nil {
			rep.ExtractFailures++
			log.Warn("could not extract file", "path", b.Path, "err", err)
			continue
		}
		set.AddAll(res)
	}
	return set, nil
}

func (s *Corpus) annotate(ctx context.Context, repo *vcs.Repo, set component.Set, rep *Report) error {
	a, err := annotate.New(ctx, repo, annotate.Opts{
		Filtered:     s.cfg.Filtered,
		LineTracking: s.cfg.LineTracking,
		Workers:      s.cfg.Workers,
		Logger:       s.cfg.Logger,
	})
	if err != nil {
		return err
	}
	err = a.AnnotateAll(ctx, set, s.cfg.Recency, s.cfg.Granularity)
	rep.Annotation = a.Stats()
	var partial *annotate.PartialError
	if errors.As(err, &partial) {
		rep.AnnotationFailures = len(partial.Failures)
		s.cfg.Logger.Warn("some components were not annotated", "failed", len(partial.Failures), "total", partial.Total)
		return nil
	}
	return err
}

// Search returns the components ranked for query, best first.
func (s *Corpus) Search(ctx context.Context, query string) ([]*component.Component, error) {
	idx, err := index.Open(s.cfg.IndexDir, s.cfg.Source)
	if err != nil {
		return nil, err
	}
	defer idx.Close()
	return idx.Search(ctx, query)
}

// Delete removes every component from the index.
func (s *Corpus) Delete(ctx context.Context) error {
	idx, err := index.Open(s.cfg.IndexDir, s.cfg.Source)
	if err != nil {
		return err
	}
	defer idx.Close()
	return idx.DeleteAll(ctx)
}

// Meta returns the value Create recorded for key.
func (s *Corpus) Meta(ctx context.Context, key string) (string, bool, error) {
	idx, err := index.Open(s.cfg.IndexDir, s.cfg.Source)
	if err != nil {
		return "", false, err
	}
	defer idx.Close()
	return idx.Meta(ctx, key)
}

// Update is not supported; rebuild with Create.
func (s *Corpus) Update(ctx context.Context) error {
	return fmt.Errorf("update: %w", ErrNotImplemented)
}
