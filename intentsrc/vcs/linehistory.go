package vcs

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
)

// LineHistory runs git's native line history for lines [startLine, endLine] of path,
// starting at the revision pointer. The output is the raw text of git log -L.
func (s *Repo) LineHistory(ctx context.Context, path string, startLine, endLine int) ([]byte, error) {
	if startLine < 1 || endLine < startLine {
		return nil, fmt.Errorf("invalid line range %d,%d for %v", startLine, endLine, path)
	}
	return s.git(ctx,
		"log",
		"--no-color",
		"-M",
		"--format=commit %H",
		fmt.Sprintf("-L%d,%d:%s", startLine, endLine, path),
		s.head,
	)
}

var lineHistoryCommitRe = regexp.MustCompile(`(?m)^commit ([0-9a-f]{40})$`)

// ParseLineHistory extracts the commit ids from LineHistory output in order of appearance.
func ParseLineHistory(out []byte) []string {
	var res []string
	seen := map[string]bool{}
	for _, m := range lineHistoryCommitRe.FindAllSubmatch(out, -1) {
		id := string(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true
		res = append(res, id)
	}
	return res
}

// PathRevision is a commit in the history of a path together with the name the path had in it.
type PathRevision struct {
	Commit string
	Path   string
}

// PathHistory lists the commits that modified path, newest first, following renames.
func (s *Repo) PathHistory(ctx context.Context, path string) ([]PathRevision, error) {
	out, err := s.git(ctx,
		"log",
		"--no-color",
		"--follow",
		"--name-only",
		"--format=%x1e%H",
		s.head,
		"--",
		path,
	)
	if err != nil {
		return nil, err
	}
	return parsePathHistory(out, path)
}

func parsePathHistory(out []byte, path string) (res []PathRevision, _ error) {
	for _, rec := range bytes.Split(out, []byte{0x1e}) {
		var fields []string
		for _, l := range bytes.Split(rec, []byte("\n")) {
			l = bytes.TrimSpace(l)
			if len(l) != 0 {
				fields = append(fields, string(l))
			}
		}
		if len(fields) == 0 {
			continue
		}
		if len(fields[0]) != 40 {
			return nil, fmt.Errorf("invalid path history record: %q", rec)
		}
		r := PathRevision{Commit: fields[0], Path: path}
		if len(fields) > 1 {
			r.Path = fields[len(fields)-1]
		}
		res = append(res, r)
	}
	return res, nil
}
