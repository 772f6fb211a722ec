package annotate

import (
	"context"
	"fmt"

	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/vcs"
)

func (s *Annotator) recent(ctx context.Context, g Granularity, blame vcs.BlameResult, c *component.Component) ([]vcs.Commit, error) {
	ids, err := recentIDs(g, blame, c)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, c.FilePath(), ids)
}

// recentIDs returns the distinct origin commits of the component's lines.
// At file granularity and for the whole-file sentinel every line of the file counts.
func recentIDs(g Granularity, blame vcs.BlameResult, c *component.Component) ([]string, error) {
	n := len(blame.Lines)
	if g == File || c.IsWholeFile() {
		if n == 0 {
			return nil, nil
		}
		return blame.Commits(1, n), nil
	}
	start, end := c.StartLine(), c.EndLine()
	if start < 1 || end < start || end > n {
		return nil, fmt.Errorf("line range %d-%d is outside of %v with %d lines", start, end, c.FilePath(), n)
	}
	return blame.Commits(start, end), nil
}
