package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fusix/intentsrc/cmd/cmdutils"
	"github.com/fusix/intentsrc/intentsrc/corpus"
	"github.com/fusix/intentsrc/intentsrc/pkg/gitrepos"
)

var createCmd = &cobra.Command{
	Use:   "create <srcdir>",
	Short: "Build the index of a repository, or of every repository one level below srcdir",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadViper(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		if p := v.GetString("profile"); p != "" {
			onEnd, err := cmdutils.EnableProfiling(p)
			if err != nil {
				cmdutils.ExitWithErr(err)
			}
			defer onEnd()
		}
		if v.GetBool("mem-logs") {
			onEnd := cmdutils.StartMemLogs()
			defer onEnd()
		}

		start := time.Now()
		stats, repoErrs, err := runCreate(context.Background(), v, args[0])
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		if len(repoErrs) != 0 {
			var errs []error
			for _, e := range repoErrs {
				errs = append(errs, e)
			}
			cmdutils.ExitWithErrs(errs)
		}
		if stats.Repos == 0 {
			cmdutils.ExitWithErr(fmt.Errorf("no git repos found in supplied dir: %v", args[0]))
		}
		if stats.SkippedEmptyRepos != 0 {
			fmt.Fprintf(color.Output, "%v", color.YellowString("Warning! Skipped %v empty repos\n", stats.SkippedEmptyRepos))
		}
		fmt.Fprintf(color.Output, "%v", color.GreenString("Finished processing repos %d components %d in %v\n", stats.Repos, stats.Components, time.Since(start)))
	},
}

type createStats struct {
	Repos             int
	SkippedEmptyRepos int
	Components        int
}

// runCreate indexes dir into --index when dir is a repository, otherwise every
// repository directly below dir into --index/<repo name>.
func runCreate(ctx context.Context, v *viper.Viper, dir string) (stats createStats, repoErrors []cmdutils.RepoError, _ error) {
	if v.GetString("index") == "" {
		return stats, nil, &corpus.ConfigError{Field: "IndexDir", Message: "--index is required"}
	}
	single := gitrepos.IsRepo(dir)
	err := gitrepos.IterDir(dir, 1, func(repoDir string) error {
		cfg, err := corpusConfig(v, repoDir)
		if err != nil {
			return err
		}
		if !single {
			cfg.IndexDir = filepath.Join(cfg.IndexDir, filepath.Base(repoDir))
		}
		c, err := corpus.New(cfg)
		if err != nil {
			return err
		}
		stats.Repos++
		err = cmdutils.RunOnRepo(ctx, os.Stdout, repoDir, cfg.Revision, func() error {
			rep, err := c.Create(ctx)
			if err != nil {
				return err
			}
			stats.Components += rep.Components
			printReport(repoDir, rep)
			return nil
		})
		if errors.Is(err, cmdutils.ErrRevParseFailed) {
			stats.SkippedEmptyRepos++
		} else if err != nil {
			repoErrors = append(repoErrors, cmdutils.RepoError{Repo: repoDir, Err: err})
		}
		return nil
	})
	return stats, repoErrors, err
}

func printReport(repoDir string, rep corpus.Report) {
	fmt.Fprintf(color.Output, "[%s][%s] files=%v skipped=%v licenses=%v components=%v extract_failures=%v annotation_failures=%v empty_promotions=%v run=%v\n",
		color.YellowString("%v", repoDir), color.CyanString(rep.Head[0:8]),
		rep.Files, rep.SkippedFiles, len(rep.Licenses), color.GreenString("%v", rep.Components), rep.ExtractFailures,
		rep.AnnotationFailures, rep.Annotation.EmptyPromotions, rep.RunID)
	for _, l := range rep.Licenses {
		fmt.Fprintf(color.Output, "  license %v\n", color.RedString(l))
	}
}
