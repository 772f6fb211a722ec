package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fusix/intentsrc/intentsrc/annotate"
	"github.com/fusix/intentsrc/intentsrc/corpus"
	"github.com/fusix/intentsrc/intentsrc/pkg/logger"
	"github.com/fusix/intentsrc/intentsrc/textproc"
)

const (
	configName = "intentsrc"
	envPrefix  = "INTENTSRC"
)

// loadViper merges flag defaults, the config file, INTENTSRC_ env vars and set flags, lowest first.
func loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

// corpusConfig builds the corpus config for srcDir. Unknown values are reported as *corpus.ConfigError.
func corpusConfig(v *viper.Viper, srcDir string) (corpus.Config, error) {
	cfg := corpus.Config{}
	cfg.SrcDir = srcDir
	cfg.IndexDir = v.GetString("index")
	cfg.Revision = v.GetString("revision")
	cfg.Filtered = v.GetBool("filtered")
	cfg.Workers = v.GetInt("workers")

	var err error
	if cfg.Granularity, err = annotate.ParseGranularity(v.GetString("granularity")); err != nil {
		return cfg, &corpus.ConfigError{Field: "Granularity", Message: err.Error()}
	}
	if cfg.Source, err = textproc.ParseSource(v.GetString("source")); err != nil {
		return cfg, &corpus.ConfigError{Field: "Source", Message: err.Error()}
	}
	if cfg.Recency, err = annotate.ParseRecency(v.GetString("recency")); err != nil {
		return cfg, &corpus.ConfigError{Field: "Recency", Message: err.Error()}
	}
	if cfg.LineTracking, err = annotate.ParseLineTracking(v.GetString("line-tracking")); err != nil {
		return cfg, &corpus.ConfigError{Field: "LineTracking", Message: err.Error()}
	}

	if v.GetBool("verbose") {
		cfg.Logger = logger.NewDefaultLogger(os.Stderr)
	} else {
		cfg.Logger = logger.NewQuietLogger(os.Stderr)
	}
	return cfg, nil
}
