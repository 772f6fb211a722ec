package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "intentsrc",
	Short:        "Index source components of a git repository together with the commit messages that shaped them",
	SilenceUsage: true,
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().String("profile", "", "one of mem, mutex, cpu, block, trace or empty to disable")
	rootCmd.PersistentFlags().Bool("mem-logs", false, "print heap usage every second")

	rootCmd.AddCommand(createCmd, searchCmd, deleteCmd, initCmd)
}

// addConfigFlags registers the flags that map to a corpus config. Each one can
// also come from the config file or an INTENTSRC_ variable.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file, defaults to ./intentsrc.toml when present")
	flags.String("index", "", "index directory")
	flags.String("revision", "HEAD", "revision to index")
	flags.String("granularity", "METHOD", "FILE or METHOD")
	flags.String("source", "CODE", "CODE, VCS or BOTH")
	flags.String("recency", "RECENT", "RECENT, ALL or RECENT_CLUSTERED")
	flags.Bool("filtered", false, "drop maintenance and short commit messages")
	flags.String("line-tracking", "native", "native or replay, how ALL follows a method's lines")
	flags.Int("workers", 0, "files annotated in parallel, defaults to the number of CPUs")
	flags.Bool("verbose", false, "log debug messages")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
