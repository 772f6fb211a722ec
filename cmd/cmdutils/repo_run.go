package cmdutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/fusix/intentsrc/intentsrc/gitexec"
)

var ErrRevParseFailed = errors.New("git rev-parse failed")

// RunOnRepo prints start and completion lines around run. Repositories where
// revision does not resolve, such as empty ones, return ErrRevParseFailed without calling run.
func RunOnRepo(ctx context.Context, wr io.Writer, repoDir string, revision string, run func() error) error {
	start := time.Now()
	fmt.Fprintf(color.Output, "starting processing repo:%v\n", color.GreenString(repoDir))
	if !hasCommit(ctx, repoDir, revision) {
		fmt.Fprintf(wr, "git rev-parse %v failed, happens for empty repos, repo: %v \n", revision, repoDir)
		return ErrRevParseFailed
	}

	err := run()
	if err != nil {
		fmt.Fprintf(color.Output, "completed repo processing in %v repo: %v err: %v\n", time.Since(start), color.RedString(repoDir), color.RedString(err.Error()))
		return err
	}

	fmt.Fprintf(color.Output, "completed repo processing in %v repo: %v\n", time.Since(start), color.GreenString(repoDir))
	return nil
}

func hasCommit(ctx context.Context, repoDir string, revision string) bool {
	res, err := gitexec.RevParse(ctx, "git", repoDir, revision)
	return err == nil && res != ""
}
