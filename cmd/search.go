package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fusix/intentsrc/cmd/cmdutils"
	"github.com/fusix/intentsrc/intentsrc/corpus"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print the indexed components matching query, best first",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openCorpus(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		res, err := c.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		for _, r := range res {
			lines := ""
			if !r.IsWholeFile() {
				lines = fmt.Sprintf(":%d-%d", r.StartLine(), r.EndLine())
			}
			fmt.Fprintf(color.Output, "%4d %s%s\n", r.SearchPosition(), color.GreenString(r.Path()), lines)
		}
		if len(res) == 0 {
			fmt.Fprintln(color.Output, color.YellowString("no results"))
		}
	},
}

// openCorpus returns a corpus for the index only commands.
func openCorpus(cmd *cobra.Command) (*corpus.Corpus, error) {
	v, err := loadViper(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := corpusConfig(v, ".")
	if err != nil {
		return nil, err
	}
	return corpus.New(cfg)
}
