package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fusix/intentsrc/cmd/cmdutils"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the effective settings to intentsrc.toml",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		v, err := loadViper(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		loc, err := writeConfigFile(v, dir)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		fmt.Fprintln(color.Output, color.GreenString("wrote %v", loc))
	},
}

// fileConfig is the layout of intentsrc.toml. Keys match the flag names.
type fileConfig struct {
	Index        string `toml:"index"`
	Revision     string `toml:"revision"`
	Granularity  string `toml:"granularity"`
	Source       string `toml:"source"`
	Recency      string `toml:"recency"`
	Filtered     bool   `toml:"filtered"`
	LineTracking string `toml:"line-tracking"`
	Workers      int    `toml:"workers"`
}

func writeConfigFile(v *viper.Viper, dir string) (string, error) {
	// validate before writing
	if _, err := corpusConfig(v, dir); err != nil {
		return "", err
	}
	fc := fileConfig{
		Index:        v.GetString("index"),
		Revision:     v.GetString("revision"),
		Granularity:  v.GetString("granularity"),
		Source:       v.GetString("source"),
		Recency:      v.GetString("recency"),
		Filtered:     v.GetBool("filtered"),
		LineTracking: v.GetString("line-tracking"),
		Workers:      v.GetInt("workers"),
	}
	data, err := toml.Marshal(fc)
	if err != nil {
		return "", err
	}
	loc := filepath.Join(dir, configName+".toml")
	if err := os.WriteFile(loc, data, 0644); err != nil {
		return "", err
	}
	return loc, nil
}
