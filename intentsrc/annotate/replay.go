package annotate

import (
	"context"

	"github.com/fusix/intentsrc/intentsrc/vcs"
)

// replay walks the history of path from the revision pointer backwards and keeps
// the commits whose diff touches the tracked range. After each commit the range
// is moved to the line numbers it had before that commit. The walk stops when
// the range was created by a commit.
func (s *Annotator) replay(ctx context.Context, path string, startLine, endLine int) ([]vcs.Commit, error) {
	hist, err := s.repo.PathHistory(ctx, path)
	if err != nil {
		return nil, err
	}
	lo, hi := startLine-1, endLine-1
	var ids []string
	for i, rev := range hist {
		if i == len(hist)-1 {
			// range is still alive at the commit that added the path
			ids = append(ids, rev.Commit)
			break
		}
		prev := hist[i+1]
		edits, err := s.repo.Diff(ctx, prev.Commit, rev.Commit, prev.Path, rev.Path)
		if err != nil {
			return nil, err
		}
		touched, nlo, nhi, alive := trackBack(edits, lo, hi)
		if touched {
			ids = append(ids, rev.Commit)
		}
		if !alive {
			break
		}
		lo, hi = nlo, nhi
	}
	return s.resolve(ctx, path, ids)
}

// trackBack maps the 0-based inclusive range [lo, hi] of the after side of edits
// to the before side. Unchanged lines shift by the line delta of the edits above
// them. Lines replaced or deleted inside the range keep their before side lines.
// Inserted lines have no before side. alive is false when no line of the range
// existed before.
func trackBack(edits []vcs.Edit, lo, hi int) (touched bool, nlo, nhi int, alive bool) {
	include := func(a, b int) {
		if b < a {
			return
		}
		if !alive {
			nlo, nhi, alive = a, b, true
			return
		}
		if a < nlo {
			nlo = a
		}
		if b > nhi {
			nhi = b
		}
	}
	delta := 0
	pos := lo
	for _, e := range edits {
		if pos > hi {
			break
		}
		if e.BeginB > pos {
			include(pos-delta, min(hi, e.BeginB-1)-delta)
			pos = e.BeginB
		}
		if overlaps(e, lo, hi) {
			touched = true
			include(e.BeginA, e.EndA()-1)
		}
		if e.EndB() > pos {
			pos = e.EndB()
		}
		delta += e.Delta()
	}
	if pos <= hi {
		include(pos-delta, hi-delta)
	}
	return
}

func overlaps(e vcs.Edit, lo, hi int) bool {
	if e.LengthB == 0 {
		// lines removed between BeginB-1 and BeginB
		return e.BeginB > lo && e.BeginB <= hi
	}
	return e.BeginB <= hi && e.EndB()-1 >= lo
}
