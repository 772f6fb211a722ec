// Package gitblame2 runs git blame --porcelain and parses the per-line origin commits.
package gitblame2

import (
	"context"
	"strconv"
	"strings"

	"github.com/fusix/intentsrc/intentsrc/gitexec"
)

type Line struct {
	Content    string
	CommitHash string
}

func (l Line) String() string {
	return l.CommitHash + ":" + l.Content
}

type Result struct {
	Lines []Line
}

func (r Result) String() string {
	out := []string{}
	for i, l := range r.Lines {
		out = append(out, strconv.Itoa(i)+":"+l.String())
	}
	return strings.Join(out, "\n")
}

// Commits returns the distinct origin commits of the 1-based inclusive line range, in line order.
func (r Result) Commits(startLine, endLine int) []string {
	seen := map[string]bool{}
	var res []string
	for i := startLine; i <= endLine; i++ {
		h := r.Lines[i-1].CommitHash
		if seen[h] {
			continue
		}
		seen[h] = true
		res = append(res, h)
	}
	return res
}

// Run blames file at commitHash. Whole-file renames are followed by git itself.
func Run(ctx context.Context, gitCommand, repoDir, commitHash, file string) (res Result, _ error) {
	args := []string{
		"blame",
		commitHash,
		"--porcelain",
		"--",
		file,
	}
	b, err := gitexec.Output(ctx, gitCommand, repoDir, args...)
	if err != nil {
		return res, err
	}
	res0, err := parseOutput(string(b))
	if err != nil {
		return res, err
	}
	for _, l0 := range res0 {
		l := Line{Content: l0.Content, CommitHash: l0.CommitHash}
		res.Lines = append(res.Lines, l)
	}
	return res, nil
}
