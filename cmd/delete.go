package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fusix/intentsrc/cmd/cmdutils"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove every component from the index",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openCorpus(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		if err := c.Delete(context.Background()); err != nil {
			cmdutils.ExitWithErr(err)
		}
		fmt.Fprintln(color.Output, color.GreenString("deleted index %v", c.Config().IndexDir))
	},
}
