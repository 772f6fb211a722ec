package gitrepos

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0777))
	}
}

func collect(t *testing.T, dir string, depth int) []string {
	var res []string
	err := IterDir(dir, depth, func(repo string) error {
		rel, err := filepath.Rel(dir, repo)
		require.NoError(t, err)
		res = append(res, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return res
}

func TestIterDirRepoItself(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, ".git", "sub/.git")
	assert.Equal(t, []string{"."}, collect(t, root, 1))
}

func TestIterDirChildren(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "b/.git", "a/.git", "c/nested/.git", "bare.git/objects", "plain")
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0666))

	assert.Equal(t, []string{"a", "b", "bare.git"}, collect(t, root, 1))
	assert.Equal(t, []string{"a", "b", "bare.git", "c/nested"}, collect(t, root, 2))
	assert.Empty(t, collect(t, root, 0))
}

func TestIterDirErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0666))
	assert.Error(t, IterDir(file, 1, func(string) error { return nil }))
	assert.Error(t, IterDir(filepath.Join(root, "missing"), 1, func(string) error { return nil }))

	mkdirs(t, root, "a/.git")
	stop := errors.New("stop")
	err := IterDir(root, 1, func(string) error { return stop })
	assert.Equal(t, stop, err)
}
