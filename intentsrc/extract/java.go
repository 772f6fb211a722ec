//go:build cgo

package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

type javaExtractor struct{}

func (javaExtractor) GetLanguage() *sitter.Language {
	return java.GetLanguage()
}

func (javaExtractor) GetQuery() string {
	return `(method_declaration) @method`
}

func (javaExtractor) PackageQuery() string {
	return ""
}

// Signature is Owner_returnType_name(params). Abstract methods, interface
// methods without a body and methods of anonymous classes are skipped.
func (javaExtractor) Signature(node *sitter.Node, src []byte, _ string) (string, bool) {
	if node.ChildByFieldName("body") == nil {
		return "", false
	}
	body := node.Parent()
	if body != nil && body.Type() == "class_body" {
		if p := body.Parent(); p != nil && p.Type() == "object_creation_expression" {
			return "", false
		}
	}
	owner := ""
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "enum_constant":
			owner = fieldContent(p, "name", src)
		}
		if owner != "" {
			break
		}
	}
	decl := owner + "_" + fieldContent(node, "type", src) + "_" + fieldContent(node, "name", src) + fieldContent(node, "parameters", src)
	return signature(decl), true
}
