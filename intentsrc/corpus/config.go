package corpus

import (
	"fmt"
	"runtime"

	"github.com/fusix/intentsrc/intentsrc/annotate"
	"github.com/fusix/intentsrc/intentsrc/pkg/logger"
	"github.com/fusix/intentsrc/intentsrc/textproc"
)

// Config describes one corpus: the repository and revision it is built from,
// where the index lives and how components are extracted and annotated.
type Config struct {
	// SrcDir is the git repository directory.
	SrcDir string

	// IndexDir holds the index database.
	IndexDir string

	// Revision defaults to HEAD.
	Revision string

	// Granularity defaults to METHOD.
	Granularity annotate.Granularity

	// Source defaults to CODE.
	Source textproc.Source

	// Recency defaults to RECENT. Only used when Source includes history.
	Recency annotate.Recency

	// Filtered drops noise commits from the annotations.
	Filtered bool

	LineTracking annotate.LineTracking

	// Workers defaults to runtime.NumCPU.
	Workers int

	Logger logger.Logger
}

// DefaultConfig returns a config with every default set and no directories.
func DefaultConfig() Config {
	c := Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Revision == "" {
		c.Revision = "HEAD"
	}
	if c.Granularity == 0 {
		c.Granularity = annotate.Method
	}
	if c.Recency == 0 {
		c.Recency = annotate.Recent
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = logger.NewNopLogger()
	}
}

// Validate returns a *ConfigError for the first invalid field.
func (c Config) Validate() error {
	if c.SrcDir == "" {
		return &ConfigError{Field: "SrcDir", Message: "source directory is required"}
	}
	if c.IndexDir == "" {
		return &ConfigError{Field: "IndexDir", Message: "index directory is required"}
	}
	if c.Revision == "" {
		return &ConfigError{Field: "Revision", Message: "revision is required"}
	}
	if _, err := annotate.NewStrategy(c.Recency, c.Granularity); err != nil {
		field := "Recency"
		if c.Granularity != annotate.File && c.Granularity != annotate.Method {
			field = "Granularity"
		}
		return &ConfigError{Field: field, Message: err.Error()}
	}
	switch c.Source {
	case textproc.Code, textproc.VCS, textproc.Both:
	default:
		return &ConfigError{Field: "Source", Message: fmt.Sprintf("unknown source %v", c.Source)}
	}
	switch c.LineTracking {
	case annotate.Native, annotate.Replay:
	default:
		return &ConfigError{Field: "LineTracking", Message: fmt.Sprintf("unknown line tracking %v", c.LineTracking)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}
