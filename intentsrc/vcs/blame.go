package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/fusix/intentsrc/intentsrc/gitblame2"
)

// BlameResult is the per-line origin commit of a file at the revision pointer.
type BlameResult = gitblame2.Result

// Blame runs blame for path at the revision pointer, following renames.
func (s *Repo) Blame(ctx context.Context, path string) (BlameResult, error) {
	if err := s.check(); err != nil {
		return BlameResult{}, err
	}
	res, err := gitblame2.Run(ctx, s.opts.GitCommand, s.opts.RepoDir, s.head, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		return res, fmt.Errorf("%w: %v: %v", ErrBlameUnavailable, path, err)
	}
	return res, nil
}
