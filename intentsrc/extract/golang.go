//go:build cgo

package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

type goExtractor struct{}

func (goExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (goExtractor) GetQuery() string {
	return `
		(function_declaration) @func
		(method_declaration) @func
	`
}

func (goExtractor) PackageQuery() string {
	return `(package_clause (package_identifier) @pkg)`
}

// Signature is Owner_name(params)result. Owner is the receiver type for methods
// and the package name for functions.
func (goExtractor) Signature(node *sitter.Node, src []byte, pkg string) (string, bool) {
	if node.ChildByFieldName("body") == nil {
		return "", false
	}
	owner := pkg
	if node.Type() == "method_declaration" {
		owner = receiverType(node, src)
	}
	decl := owner + "_" + fieldContent(node, "name", src) + fieldContent(node, "parameters", src) + fieldContent(node, "result", src)
	return signature(decl), true
}

func receiverType(node *sitter.Node, src []byte) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		p := recv.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		t := fieldContent(p, "type", src)
		t = strings.TrimLeft(t, "*")
		if i := strings.Index(t, "["); i >= 0 {
			t = t[:i]
		}
		return strings.TrimSpace(t)
	}
	return ""
}
