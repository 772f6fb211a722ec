// Package component defines the indexed unit: a whole file or a method body
// identified by its path and an inclusive 1-based line range.
package component

import (
	"sort"
	"strings"
	"sync"
)

// Separator divides the file path from the declaration signature in a method component path.
const Separator = "::"

// WholeFile is the start and end line of a component whose bounds are unknown.
const WholeFile = -1

// Component is created by the extractor, annotated once, then read by the index.
// Identity is the path; content only grows.
type Component struct {
	path      string
	startLine int
	endLine   int

	mu             sync.Mutex
	content        strings.Builder
	searchPosition int
}

// New returns a whole-file component with no content.
func New(path string) *Component {
	return NewWithRange(path, "", WholeFile, WholeFile)
}

// NewWithContent returns a whole-file component with content.
func NewWithContent(path string, content string) *Component {
	return NewWithRange(path, content, WholeFile, WholeFile)
}

// NewWithRange returns a component covering lines [startLine, endLine].
func NewWithRange(path string, content string, startLine, endLine int) *Component {
	s := &Component{}
	s.path = path
	s.startLine = startLine
	s.endLine = endLine
	s.content.WriteString(content)
	return s
}

func (s *Component) Path() string {
	return s.path
}

// FilePath is the part of the path before the signature separator, with forward slashes.
func (s *Component) FilePath() string {
	p := s.path
	if i := strings.Index(p, Separator); i >= 0 {
		p = p[:i]
	}
	return strings.ReplaceAll(p, "\\", "/")
}

func (s *Component) StartLine() int {
	return s.startLine
}

func (s *Component) EndLine() int {
	return s.endLine
}

// IsWholeFile reports whether the line range is the unknown-bounds sentinel.
func (s *Component) IsWholeFile() bool {
	return s.startLine == WholeFile && s.endLine == WholeFile
}

func (s *Component) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content.String()
}

// AddContent appends text. A single space separates it from non-empty existing content.
func (s *Component) AddContent(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content.Len() != 0 {
		s.content.WriteByte(' ')
	}
	s.content.WriteString(text)
}

// SearchPosition is the 1-based rank assigned by a search, 0 when not a search result.
func (s *Component) SearchPosition() int {
	return s.searchPosition
}

func (s *Component) SetSearchPosition(pos int) {
	s.searchPosition = pos
}

func (s *Component) String() string {
	return s.path
}

// Set holds components with unique paths.
type Set struct {
	byPath map[string]*Component
}

func NewSet(components ...*Component) Set {
	s := Set{byPath: map[string]*Component{}}
	for _, c := range components {
		s.Add(c)
	}
	return s
}

// Add inserts c unless a component with the same path is present. It reports whether c was added.
func (s *Set) Add(c *Component) bool {
	if s.byPath == nil {
		s.byPath = map[string]*Component{}
	}
	if _, ok := s.byPath[c.Path()]; ok {
		return false
	}
	s.byPath[c.Path()] = c
	return true
}

func (s Set) Get(path string) (*Component, bool) {
	c, ok := s.byPath[path]
	return c, ok
}

func (s Set) Len() int {
	return len(s.byPath)
}

// AddAll inserts every component of other.
func (s *Set) AddAll(other Set) {
	for _, c := range other.byPath {
		s.Add(c)
	}
}

// Slice returns the components sorted by path.
func (s Set) Slice() []*Component {
	res := make([]*Component, 0, len(s.byPath))
	for _, c := range s.byPath {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Path() < res[j].Path()
	})
	return res
}

// FileGroup is the set of components sharing one file path.
type FileGroup struct {
	FilePath   string
	Components []*Component
}

// ByFile groups components by FilePath. Groups and their members are sorted by path.
func (s Set) ByFile() []FileGroup {
	idx := map[string]int{}
	var res []FileGroup
	for _, c := range s.Slice() {
		fp := c.FilePath()
		i, ok := idx[fp]
		if !ok {
			i = len(res)
			idx[fp] = i
			res = append(res, FileGroup{FilePath: fp})
		}
		res[i].Components = append(res[i].Components, c)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].FilePath < res[j].FilePath
	})
	return res
}
