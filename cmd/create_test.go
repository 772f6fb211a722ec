package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/index"
	"github.com/fusix/intentsrc/intentsrc/pkg/testutil"
)

func TestRunCreateSingleRepo(t *testing.T) {
	t.Chdir(t.TempDir())
	r := testutil.NewRepo(t)
	r.Write("src/A.java", "class A { int size() { return 1; } }\n")
	r.Commit("add size accessor to A")

	out := filepath.Join(t.TempDir(), "idx")
	v, err := loadViper(testCmd(t, "--index", out, "--granularity", "FILE"))
	require.NoError(t, err)

	stats, repoErrs, err := runCreate(context.Background(), v, r.Dir)
	require.NoError(t, err)
	assert.Empty(t, repoErrs)
	assert.Equal(t, 1, stats.Repos)
	assert.Equal(t, 1, stats.Components)
	assert.FileExists(t, filepath.Join(out, index.FileName))
}

func TestRunCreateParentDir(t *testing.T) {
	t.Chdir(t.TempDir())
	r := testutil.NewRepo(t)
	r.Write("src/A.java", "class A { int size() { return 1; } }\n")
	r.Commit("add size accessor to A")

	out := filepath.Join(t.TempDir(), "idx")
	v, err := loadViper(testCmd(t, "--index", out, "--granularity", "FILE"))
	require.NoError(t, err)

	stats, repoErrs, err := runCreate(context.Background(), v, filepath.Dir(r.Dir))
	require.NoError(t, err)
	assert.Empty(t, repoErrs)
	assert.Equal(t, 1, stats.Repos)
	assert.FileExists(t, filepath.Join(out, filepath.Base(r.Dir), index.FileName))
}

func TestRunCreateEmptyRepo(t *testing.T) {
	t.Chdir(t.TempDir())
	r := testutil.NewRepo(t)
	v, err := loadViper(testCmd(t, "--index", t.TempDir()))
	require.NoError(t, err)

	stats, repoErrs, err := runCreate(context.Background(), v, r.Dir)
	require.NoError(t, err)
	assert.Empty(t, repoErrs)
	assert.Equal(t, 1, stats.SkippedEmptyRepos)
}

func TestRunCreateNeedsIndex(t *testing.T) {
	t.Chdir(t.TempDir())
	v, err := loadViper(testCmd(t))
	require.NoError(t, err)
	_, _, err = runCreate(context.Background(), v, ".")
	assert.Error(t, err)
}
