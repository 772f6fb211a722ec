package vcs

import (
	"context"
	"fmt"

	"github.com/sourcegraph/go-diff/diff"
)

// EditKind is the shape of a diff hunk.
type EditKind int

const (
	Insert EditKind = iota
	Delete
	Replace
)

func (k EditKind) String() string {
	switch k {
	case Insert:
		return "INSERT"
	case Delete:
		return "DELETE"
	case Replace:
		return "REPLACE"
	}
	return "UNKNOWN"
}

// Edit is one hunk of a zero-context diff. Begins are 0-based line indexes in
// the before (A) and after (B) file.
type Edit struct {
	Kind    EditKind
	BeginA  int
	LengthA int
	BeginB  int
	LengthB int
}

func (e Edit) EndA() int {
	return e.BeginA + e.LengthA
}

func (e Edit) EndB() int {
	return e.BeginB + e.LengthB
}

// Delta is the change in line count introduced by the edit.
func (e Edit) Delta() int {
	return e.LengthB - e.LengthA
}

func (e Edit) String() string {
	return fmt.Sprintf("%v(%d-%d,%d-%d)", e.Kind, e.BeginA, e.EndA(), e.BeginB, e.EndB())
}

// Diff returns the edits turning fromPath at commit from into toPath at commit to.
func (s *Repo) Diff(ctx context.Context, from, to string, fromPath, toPath string) ([]Edit, error) {
	args := []string{
		"diff",
		"--no-color",
		"--no-ext-diff",
		"-M",
		"-U0",
		from,
		to,
		"--",
		toPath,
	}
	if fromPath != toPath {
		args = append(args, fromPath)
	}
	out, err := s.git(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseEdits(out)
}

// ParseEdits converts the hunks of a -U0 unified diff into edits, in file order.
func ParseEdits(out []byte) ([]Edit, error) {
	if len(out) == 0 {
		return nil, nil
	}
	fds, err := diff.ParseMultiFileDiff(out)
	if err != nil {
		return nil, fmt.Errorf("could not parse diff: %w", err)
	}
	var res []Edit
	for _, fd := range fds {
		for _, h := range fd.Hunks {
			res = append(res, hunkToEdit(h))
		}
	}
	return res, nil
}

func hunkToEdit(h *diff.Hunk) Edit {
	e := Edit{
		LengthA: int(h.OrigLines),
		LengthB: int(h.NewLines),
	}
	// with zero length the start line is the line after which the change sits
	e.BeginA = int(h.OrigStartLine)
	if e.LengthA > 0 {
		e.BeginA--
	}
	e.BeginB = int(h.NewStartLine)
	if e.LengthB > 0 {
		e.BeginB--
	}
	switch {
	case e.LengthA == 0:
		e.Kind = Insert
	case e.LengthB == 0:
		e.Kind = Delete
	default:
		e.Kind = Replace
	}
	return e
}
