// Package textproc turns source text and commit messages into index terms.
//
// The pipeline is: split camelCase words, tokenize into lowercase letter runs,
// drop language keywords (code only), stem, drop English stop words.
package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Source selects which text the corpus indexes.
type Source int

const (
	// Code indexes component source text.
	Code Source = iota
	// VCS indexes commit messages only.
	VCS
	// Both indexes source text and commit messages.
	Both
)

func (s Source) String() string {
	switch s {
	case Code:
		return "CODE"
	case VCS:
		return "VCS"
	case Both:
		return "BOTH"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource accepts CODE, VCS or BOTH in any case.
func ParseSource(s string) (Source, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CODE":
		return Code, nil
	case "VCS":
		return VCS, nil
	case "BOTH":
		return Both, nil
	}
	return 0, fmt.Errorf("unknown source %q", s)
}

// IncludesCode reports whether component source text goes into the index.
func (s Source) IncludesCode() bool {
	return s == Code || s == Both
}

// IncludesHistory reports whether commit messages go into the index.
func (s Source) IncludesHistory() bool {
	return s == VCS || s == Both
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	keywords map[string]bool
}

var (
	// CodeAnalyzer also drops Java keywords before stemming.
	CodeAnalyzer = &Analyzer{keywords: javaKeywords}
	// MessageAnalyzer is used for commit messages and for the VCS and BOTH sources.
	MessageAnalyzer = &Analyzer{}
)

// For returns the analyzer used to index and query the given source.
func For(s Source) *Analyzer {
	if s == Code {
		return CodeAnalyzer
	}
	return MessageAnalyzer
}

var (
	camelLowerUpper = regexp.MustCompile(`(\p{Ll}|\p{Nd})(\p{Lu})`)
	camelAcronym    = regexp.MustCompile(`(\p{Lu})(\p{Lu}\p{Ll})`)
)

// SplitCamel inserts a space at camelCase word boundaries.
// "getHTMLParser" becomes "get HTML Parser".
func SplitCamel(text string) string {
	text = camelLowerUpper.ReplaceAllString(text, "$1 $2")
	// twice, the matches of an acronym boundary can overlap
	text = camelAcronym.ReplaceAllString(text, "$1 $2")
	return camelAcronym.ReplaceAllString(text, "$1 $2")
}

// Tokens returns the analyzed terms of text in order, duplicates included.
func (a *Analyzer) Tokens(text string) (res []string) {
	words := strings.FieldsFunc(SplitCamel(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		w = strings.ToLower(w)
		if a.keywords[w] {
			continue
		}
		w = english.Stem(w, false)
		if w == "" || stopWords[w] {
			continue
		}
		res = append(res, w)
	}
	return
}

// TokenSet returns the distinct analyzed terms of text.
func (a *Analyzer) TokenSet(text string) map[string]bool {
	res := map[string]bool{}
	for _, t := range a.Tokens(text) {
		res[t] = true
	}
	return res
}

// Terms returns the analyzed text as a space separated string.
func (a *Analyzer) Terms(text string) string {
	return strings.Join(a.Tokens(text), " ")
}

func set(words ...string) map[string]bool {
	res := map[string]bool{}
	for _, w := range words {
		res[w] = true
	}
	return res
}

var stopWords = set(
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it",
	"no", "not", "of", "on", "or", "such",
	"that", "the", "their", "then", "there", "these",
	"they", "this", "to", "was", "will", "with",
)

var javaKeywords = set(
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new",
	"package", "private", "protected", "public", "return", "short", "static",
	"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while", "true", "false", "null",
)
