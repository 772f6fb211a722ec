//go:build cgo

package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/fusix/intentsrc/intentsrc/component"
)

// MethodsAvailable reports whether method granularity is supported by this build.
func MethodsAvailable() bool {
	return true
}

// languageExtractor finds the methods of one language.
type languageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	// Signature returns the declaration part of the component path, false to skip the node.
	Signature(node *sitter.Node, src []byte, pkg string) (string, bool)
	PackageQuery() string
}

func extractorFor(language string) (languageExtractor, bool) {
	switch language {
	case "Java":
		return javaExtractor{}, true
	case "Go":
		return goExtractor{}, true
	}
	return nil, false
}

func extractMethods(ctx context.Context, content []byte, path string, language string, includeContent bool) (component.Set, error) {
	res := component.NewSet()
	le, ok := extractorFor(language)
	if !ok {
		return res, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, language)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(le.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return res, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	defer tree.Close()
	root := tree.RootNode()

	pkg := ""
	if q := le.PackageQuery(); q != "" {
		pkgQuery, err := sitter.NewQuery([]byte(q), le.GetLanguage())
		if err != nil {
			return res, fmt.Errorf("failed to create query: %w", err)
		}
		defer pkgQuery.Close()
		pqc := sitter.NewQueryCursor()
		defer pqc.Close()
		pqc.Exec(pkgQuery, root)
		if m, ok := pqc.NextMatch(); ok && len(m.Captures) != 0 {
			pkg = m.Captures[0].Node.Content(content)
		}
	}

	query, err := sitter.NewQuery([]byte(le.GetQuery()), le.GetLanguage())
	if err != nil {
		return res, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			sig, ok := le.Signature(c.Node, content, pkg)
			if !ok {
				continue
			}
			text := ""
			if includeContent {
				text = c.Node.Content(content)
			}
			start := int(c.Node.StartPoint().Row) + 1
			end := int(c.Node.EndPoint().Row) + 1
			res.Add(component.NewWithRange(path+component.Separator+sig, text, start, end))
		}
	}
	return res, nil
}

func fieldContent(node *sitter.Node, field string, src []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return n.Content(src)
}
