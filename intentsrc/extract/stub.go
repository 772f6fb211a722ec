//go:build !cgo

package extract

import (
	"context"

	"github.com/fusix/intentsrc/intentsrc/component"
)

// MethodsAvailable reports whether method granularity is supported by this build.
func MethodsAvailable() bool {
	return false
}

func extractMethods(ctx context.Context, content []byte, path string, language string, includeContent bool) (component.Set, error) {
	return component.NewSet(), ErrMethodsUnavailable
}
