package gitexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned by Prepare when the git binary is not on PATH.
var ErrGitNotFound = errors.New("git binary not found")

// Prepare checks that git can be run and that repoDir is a git repository.
func Prepare(ctx context.Context, gitCommand, repoDir string) error {
	if _, err := exec.LookPath(gitCommand); err != nil {
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	out, err := Output(ctx, gitCommand, repoDir, "rev-parse", "--git-dir")
	if err != nil {
		return fmt.Errorf("not a git repository: %v: %w", repoDir, err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return fmt.Errorf("not a git repository: %v", repoDir)
	}
	return nil
}

// RevParse resolves rev to a full commit hash.
func RevParse(ctx context.Context, gitCommand, repoDir, rev string) (string, error) {
	if rev == "" || strings.HasPrefix(rev, "-") {
		return "", fmt.Errorf("invalid revision %q", rev)
	}
	out, err := Output(ctx, gitCommand, repoDir, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return "", err
	}
	res := strings.TrimSpace(string(out))
	if len(res) != 40 {
		return "", fmt.Errorf("invalid commit sha len for revision %v: %q", rev, res)
	}
	return res, nil
}
