// Package commitmeta reads commit records (parents, author, date and full message) from git log.
package commitmeta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fusix/intentsrc/intentsrc/gitexec"
)

type Opts struct {
	// Revision is the commit the walk starts from. Defaults to HEAD.
	Revision string

	// Path restricts the walk to commits modifying this path.
	Path string

	// Follow continues the walk across renames of Path.
	Follow bool

	// MaxCount limits the number of commits returned when positive.
	MaxCount int

	// Revisions lists explicit commits to read instead of walking from Revision.
	Revisions []string
}

type Processor struct {
	repoDir    string
	gitCommand string
	opts       Opts
}

func New(repoDir string, opts Opts) *Processor {
	s := &Processor{
		repoDir:    repoDir,
		gitCommand: gitexec.DefaultCommand,
		opts:       opts,
	}
	return s
}

// Commit is an immutable commit record.
type Commit struct {
	SHA         string
	Parents     []string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	Message     string
}

// Author returns either the author name (preference) or the email if not found
func (c Commit) Author() string {
	if c.AuthorName != "" {
		return c.AuthorName
	}
	return c.AuthorEmail
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

func (c Commit) String() string {
	return c.SHA
}

func (s *Processor) RunSlice(ctx context.Context) (res []Commit, _ error) {
	err := s.Run(ctx, func(c Commit) error {
		res = append(res, c)
		return nil
	})
	return res, err
}

func (s *Processor) RunMap(ctx context.Context) (map[string]Commit, error) {
	res := map[string]Commit{}
	err := s.Run(ctx, func(c Commit) error {
		res[c.SHA] = c
		return nil
	})
	return res, err
}

// Run calls cb for every commit in walk order, newest first.
func (s *Processor) Run(ctx context.Context, cb func(Commit) error) error {
	r, err := s.gitLog(ctx)
	if err != nil {
		return err
	}
	perr := Parse(r, cb)
	cerr := r.Close()
	if perr != nil {
		return fmt.Errorf("error processing commits from %v. %v", s.repoDir, perr)
	}
	return cerr
}

const (
	recordSep = '\x1e'
	fieldSep  = "\x00"
)

// Format is the git log --format value understood by Parse.
const Format = "--format=%x1e%H%x00%P%x00%an%x00%ae%x00%aI%x00%B"

func (s *Processor) gitLog(ctx context.Context) (io.ReadCloser, error) {
	args := []string{
		"log",
		"--no-color",
		Format,
	}
	if s.opts.Follow {
		args = append(args, "--follow")
	}
	if s.opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", s.opts.MaxCount))
	}
	if len(s.opts.Revisions) != 0 {
		args = append(args, "--no-walk=unsorted")
		args = append(args, s.opts.Revisions...)
	} else {
		rev := s.opts.Revision
		if rev == "" {
			rev = "HEAD"
		}
		args = append(args, rev)
	}
	args = append(args, "--")
	if s.opts.Path != "" {
		args = append(args, s.opts.Path)
	}
	return gitexec.ExecPiped(ctx, s.gitCommand, s.repoDir, args)
}

const mb = 1000 * 1000
const maxRecord = 64 * mb

// Parse reads records produced by git log with Format.
func Parse(r io.Reader, cb func(Commit) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxRecord)
	scanner.Split(splitRecords)
	for scanner.Scan() {
		rec := scanner.Text()
		if strings.TrimSpace(rec) == "" {
			continue
		}
		c, err := parseRecord(rec)
		if err != nil {
			return err
		}
		if err := cb(c); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func splitRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	start := 0
	if data[0] == recordSep {
		start = 1
	}
	if i := bytes.IndexByte(data[start:], recordSep); i >= 0 {
		return start + i, data[start : start+i], nil
	}
	if atEOF {
		return len(data), data[start:], nil
	}
	return 0, nil, nil
}

func parseRecord(rec string) (c Commit, _ error) {
	parts := strings.SplitN(rec, fieldSep, 6)
	if len(parts) != 6 {
		return c, fmt.Errorf("malformed commit record: %q", rec)
	}
	c.SHA = strings.TrimSpace(parts[0])
	if len(c.SHA) != 40 {
		return c, fmt.Errorf("malformed commit sha: %q", c.SHA)
	}
	if p := strings.TrimSpace(parts[1]); p != "" {
		c.Parents = strings.Split(p, " ")
	}
	c.AuthorName = parts[2]
	c.AuthorEmail = parts[3]
	d, err := parseDate(parts[4])
	if err != nil {
		return c, fmt.Errorf("error parsing commit %s. %v", c.SHA, err)
	}
	c.Date = d
	c.Message = strings.TrimRight(parts[5], "\n")
	return c, nil
}

func parseDate(d string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing commit date `%v`. %v", d, err)
	}
	return t, nil
}
