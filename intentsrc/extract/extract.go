// Package extract turns file content into components at file or method granularity.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fusix/intentsrc/intentsrc/annotate"
	"github.com/fusix/intentsrc/intentsrc/component"
)

var (
	// ErrUnsupportedLanguage is returned for method granularity on a language without a method extractor.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrMethodsUnavailable is returned for method granularity when built without cgo.
	ErrMethodsUnavailable = errors.New("method extraction requires cgo")
)

// Languages are the enry language names with a method extractor.
var Languages = []string{"Go", "Java"}

// Extractor is safe for concurrent use.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the components of the file at path. language is the enry language name.
// Without includeContent the components carry only their identity and line range.
func (s *Extractor) Extract(ctx context.Context, content []byte, path string, language string, g annotate.Granularity, includeContent bool) (component.Set, error) {
	switch g {
	case annotate.File:
		return extractFile(content, path, includeContent), nil
	case annotate.Method:
		return extractMethods(ctx, content, path, language, includeContent)
	}
	return component.Set{}, fmt.Errorf("%w: %v", annotate.ErrUnsupportedGranularity, g)
}

func extractFile(content []byte, path string, includeContent bool) component.Set {
	if !includeContent {
		return component.NewSet(component.New(path))
	}
	return component.NewSet(component.NewWithContent(path, StripLicenseHeader(string(content))))
}

// StripLicenseHeader drops everything up to the end of the first block comment
// when that part mentions a license.
func StripLicenseHeader(content string) string {
	i := strings.Index(content, "*/")
	if i < 0 {
		return content
	}
	if strings.Contains(strings.ToLower(content[:i+2]), "license") {
		return content[i+2:]
	}
	return content
}

// signature removes every whitespace rune.
func signature(s string) string {
	return strings.Join(strings.Fields(s), "")
}
