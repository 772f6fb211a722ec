// Package testutil builds throwaway git repositories for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const baseTime = 1577836800 // 2020-01-01T00:00:00Z

// Repo is a git repository in a temp dir. Commits get strictly increasing dates so ordering is stable.
type Repo struct {
	t     testing.TB
	Dir   string
	home  string
	clock int
}

// NewRepo creates an empty repository on branch master. The test is skipped if git is missing.
func NewRepo(t testing.TB) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	s := &Repo{}
	s.t = t
	wrapper := t.TempDir()
	s.Dir = filepath.Join(wrapper, "repo")
	s.home = filepath.Join(wrapper, "home")
	if err := os.MkdirAll(s.Dir, 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(s.home, 0777); err != nil {
		t.Fatal(err)
	}
	s.Git("init", "-q")
	s.Git("symbolic-ref", "HEAD", "refs/heads/master")
	return s
}

func (s *Repo) env() []string {
	date := fmt.Sprintf("%d +0000", baseTime+s.clock*60)
	return append(os.Environ(),
		"HOME="+s.home,
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_AUTHOR_NAME=User1",
		"GIT_AUTHOR_EMAIL=user1@example.com",
		"GIT_COMMITTER_NAME=User1",
		"GIT_COMMITTER_EMAIL=user1@example.com",
		"GIT_AUTHOR_DATE="+date,
		"GIT_COMMITTER_DATE="+date,
	)
}

// Git runs a git command in the repo and returns trimmed stdout. Failures end the test.
func (s *Repo) Git(args ...string) string {
	s.t.Helper()
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	full := append([]string{"-c", "commit.gpgsign=false", "-c", "core.autocrlf=false"}, args...)
	c := exec.Command("git", full...)
	c.Dir = s.Dir
	c.Env = s.env()
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		s.t.Fatalf("git %v failed: %v %v", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

// Write creates or replaces a file relative to the repo root.
func (s *Repo) Write(path string, content string) {
	s.t.Helper()
	loc := filepath.Join(s.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(loc), 0777); err != nil {
		s.t.Fatal(err)
	}
	if err := os.WriteFile(loc, []byte(content), 0666); err != nil {
		s.t.Fatal(err)
	}
}

// WriteLines writes lines joined with newlines, with a trailing newline.
func (s *Repo) WriteLines(path string, lines ...string) {
	s.t.Helper()
	s.Write(path, strings.Join(lines, "\n")+"\n")
}

// Commit stages everything and commits, returning the new commit hash.
func (s *Repo) Commit(msg string) string {
	s.t.Helper()
	s.clock++
	s.Git("add", "-A")
	s.Git("commit", "-q", "--allow-empty", "-m", msg)
	return s.Git("rev-parse", "HEAD")
}

// Branch creates a branch at the current commit and checks it out.
func (s *Repo) Branch(name string) {
	s.t.Helper()
	s.Git("checkout", "-q", "-b", name)
}

// Checkout switches to an existing branch.
func (s *Repo) Checkout(name string) {
	s.t.Helper()
	s.Git("checkout", "-q", name)
}

// Merge merges branch into the current one with a merge commit and returns its hash.
func (s *Repo) Merge(branch string, msg string) string {
	s.t.Helper()
	s.clock++
	s.Git("merge", "-q", "--no-ff", "-m", msg, branch)
	return s.Git("rev-parse", "HEAD")
}

// Move renames a file with git mv.
func (s *Repo) Move(from, to string) {
	s.t.Helper()
	s.Git("mv", from, to)
}
