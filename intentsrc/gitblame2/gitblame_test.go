package gitblame2

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/gitexec"
	"github.com/fusix/intentsrc/intentsrc/pkg/testutil"
)

func ml(content string, commitHash string) Line {
	return Line{Content: content, CommitHash: commitHash}
}

func TestBasic(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.WriteLines("main.go", "package main", "", "func main() {", "}", "")
	c1 := repo.Commit("c1")
	repo.WriteLines("main.go", "package main", "", "func main() {", "  // do nothing", "}", "")
	c2 := repo.Commit("c2")

	got, err := Run(context.Background(), gitexec.DefaultCommand, repo.Dir, c2, "main.go")
	require.NoError(t, err)
	want := []Line{
		ml("package main", c1),
		ml("", c1),
		ml("func main() {", c1),
		ml("  // do nothing", c2),
		ml("}", c1),
		ml("", c1),
	}
	assert.Equal(t, want, got.Lines)
	assert.Equal(t, []string{c1, c2}, got.Commits(1, 6))
	assert.Equal(t, []string{c2}, got.Commits(4, 4))
}

func TestNonLatestCommit(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.WriteLines("main.go", "package main")
	c1 := repo.Commit("c1")
	repo.WriteLines("main.go", "package main", "// more")
	repo.Commit("c2")

	got, err := Run(context.Background(), gitexec.DefaultCommand, repo.Dir, c1, "main.go")
	require.NoError(t, err)
	assert.Equal(t, []Line{ml("package main", c1)}, got.Lines)
}

func TestMissingFile(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.WriteLines("main.go", "package main")
	c1 := repo.Commit("c1")

	_, err := Run(context.Background(), gitexec.DefaultCommand, repo.Dir, c1, "other.go")
	assert.Error(t, err)
}
