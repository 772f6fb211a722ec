package cmdutils

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// RepoError is the failure of one repository in a multi-repo run.
type RepoError struct {
	Repo string
	Err  error
}

func (s RepoError) Error() string {
	return fmt.Sprintf("repo: %v err: %v", s.Repo, s.Err)
}

func (s RepoError) Unwrap() error {
	return s.Err
}

func ExitWithErr(err error) {
	fmt.Fprintln(color.Output, color.RedString("failed with error: %v\n", err.Error()))
	os.Exit(1)
}

func ExitWithErrs(errs []error) {
	if len(errs) == 0 {
		return
	}
	if len(errs) == 1 {
		ExitWithErr(errs[0])
		return
	}
	for _, err := range errs {
		fmt.Fprintln(color.Output, color.RedString("%v\n", err))
	}
	fmt.Fprintln(color.Output, color.RedString("failed"))
	os.Exit(1)
}
