package annotate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/vcs"
)

func (s *Annotator) all(ctx context.Context, g Granularity, c *component.Component) ([]vcs.Commit, error) {
	if g == File || c.IsWholeFile() {
		return s.fileHistory(ctx, c.FilePath())
	}
	start, end := c.StartLine(), c.EndLine()
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid line range %d-%d", start, end)
	}
	switch s.opts.LineTracking {
	case Replay:
		key := keyOf("replay", c.FilePath(), strconv.Itoa(start), strconv.Itoa(end))
		return s.lines.Get(key, func() ([]vcs.Commit, error) {
			return s.replay(ctx, c.FilePath(), start, end)
		})
	default:
		key := keyOf("native", c.FilePath(), strconv.Itoa(start), strconv.Itoa(end))
		return s.lines.Get(key, func() ([]vcs.Commit, error) {
			return s.lineHistory(ctx, c.FilePath(), start, end)
		})
	}
}

// fileHistory is every commit that modified path, following renames. A path without history has no commits.
func (s *Annotator) fileHistory(ctx context.Context, path string) ([]vcs.Commit, error) {
	return s.ancestry.Get(keyOf("ancestry", path), func() ([]vcs.Commit, error) {
		return s.repo.WalkAncestry(ctx, path, true)
	})
}

func (s *Annotator) lineHistory(ctx context.Context, path string, start, end int) ([]vcs.Commit, error) {
	out, err := s.repo.LineHistory(ctx, path, start, end)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, path, vcs.ParseLineHistory(out))
}
