package vcs

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Blob is a regular file in the tree of the revision pointer.
type Blob struct {
	Path string
	ID   string
	Mode string
}

// Blobs lists every regular file in the tree of the revision pointer, sorted by path.
func (s *Repo) Blobs(ctx context.Context) ([]Blob, error) {
	out, err := s.git(ctx, "ls-tree", "-r", "-z", "--full-tree", s.head)
	if err != nil {
		return nil, err
	}
	return parseLsTree(out)
}

// ReadBlob returns the content of path at the revision pointer.
func (s *Repo) ReadBlob(ctx context.Context, path string) ([]byte, error) {
	return s.git(ctx, "cat-file", "blob", s.head+":"+path)
}

// parseLsTree parses `git ls-tree -r -z` output: "<mode> SP <type> SP <object> TAB <path> NUL".
func parseLsTree(out []byte) (res []Blob, _ error) {
	for _, entry := range bytes.Split(out, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		tab := bytes.IndexByte(entry, '\t')
		if tab < 0 {
			return nil, fmt.Errorf("invalid ls-tree entry: %q", entry)
		}
		meta := strings.Fields(string(entry[:tab]))
		if len(meta) != 3 {
			return nil, fmt.Errorf("invalid ls-tree entry: %q", entry)
		}
		mode, kind, id := meta[0], meta[1], meta[2]
		if kind != "blob" {
			// submodule
			continue
		}
		if mode != "100644" && mode != "100755" {
			// symlink
			continue
		}
		res = append(res, Blob{Path: string(entry[tab+1:]), ID: id, Mode: mode})
	}
	return res, nil
}
