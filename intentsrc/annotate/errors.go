package annotate

import (
	"fmt"
	"sort"
	"strings"
)

// AnnotationError is the failure of a single component.
type AnnotationError struct {
	Path string
	Err  error
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("could not annotate %v: %v", e.Path, e.Err)
}

func (e *AnnotationError) Unwrap() error {
	return e.Err
}

// PartialError is returned by AnnotateAll when some components failed and the rest were annotated.
type PartialError struct {
	Failures []*AnnotationError
	// Total is the number of components in the batch.
	Total int
}

func (e *PartialError) Error() string {
	var paths []string
	for i, f := range e.Failures {
		if i == 3 {
			paths = append(paths, "...")
			break
		}
		paths = append(paths, f.Path)
	}
	return fmt.Sprintf("failed to annotate %d of %d components: %v", len(e.Failures), e.Total, strings.Join(paths, ", "))
}

// Unwrap exposes the component failures to errors.Is and errors.As.
func (e *PartialError) Unwrap() []error {
	res := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		res = append(res, f)
	}
	return res
}

func sortFailures(failures []*AnnotationError) {
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})
}
