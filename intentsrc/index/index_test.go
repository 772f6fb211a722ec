package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/textproc"
)

func openTemp(t *testing.T, source textproc.Source) *Index {
	t.Helper()
	idx, err := Open(t.TempDir(), source)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestWriteAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := openTemp(t, textproc.VCS)

	set := component.NewSet(
		component.NewWithRange("a.go::pkg_Lookup()", "implement foo lookup fix foo off-by-one", 3, 9),
		component.NewWithRange("a.go::pkg_Parse()", "add parser for tokens", 11, 20),
		component.NewWithContent("b.go", "lookup table caching"),
	)
	require.NoError(t, idx.WriteAll(ctx, set))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	res, err := idx.Search(ctx, "foo lookups")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a.go::pkg_Lookup()", res[0].Path())
	assert.Equal(t, 1, res[0].SearchPosition())
	assert.Equal(t, 3, res[0].StartLine())
	assert.Equal(t, 9, res[0].EndLine())
	assert.Equal(t, "b.go", res[1].Path())
	assert.Equal(t, 2, res[1].SearchPosition())
	assert.True(t, res[1].IsWholeFile())
}

func TestSearchNoTerms(t *testing.T) {
	idx := openTemp(t, textproc.Code)
	res, err := idx.Search(context.Background(), "the and of")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestWriteReplaces(t *testing.T) {
	ctx := context.Background()
	idx := openTemp(t, textproc.VCS)
	require.NoError(t, idx.WriteAll(ctx, component.NewSet(component.NewWithContent("a.go", "parser"))))
	require.NoError(t, idx.WriteAll(ctx, component.NewSet(component.NewWithContent("a.go", "renderer"))))

	res, err := idx.Search(ctx, "parser")
	require.NoError(t, err)
	assert.Empty(t, res)
	res, err = idx.Search(ctx, "renderer")
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestCodeAnalyzerSplitsIdentifiers(t *testing.T) {
	ctx := context.Background()
	idx := openTemp(t, textproc.Code)
	require.NoError(t, idx.WriteAll(ctx, component.NewSet(
		component.NewWithContent("A.java", "public int parseHttpHeader(String line) { return 0; }"),
	)))
	res, err := idx.Search(ctx, "HTTP header")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "A.java", res[0].Path())
}

func TestDeleteAllAndMeta(t *testing.T) {
	ctx := context.Background()
	idx := openTemp(t, textproc.VCS)
	require.NoError(t, idx.WriteAll(ctx, component.NewSet(component.NewWithContent("a.go", "parser"))))
	require.NoError(t, idx.SetMeta(ctx, "revision", "HEAD"))

	v, ok, err := idx.Meta(ctx, "revision")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "HEAD", v)

	require.NoError(t, idx.DeleteAll(ctx))
	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	_, ok, err = idx.Meta(ctx, "revision")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	idx, err := Open(dir, textproc.VCS)
	require.NoError(t, err)
	require.NoError(t, idx.WriteAll(ctx, component.NewSet(component.NewWithContent("a.go", "parser"))))
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())
	_, err = idx.Search(ctx, "parser")
	assert.ErrorIs(t, err, ErrClosed)

	idx, err = Open(dir, textproc.VCS)
	require.NoError(t, err)
	defer idx.Close()
	res, err := idx.Search(ctx, "parser")
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestMatchExpression(t *testing.T) {
	idx := &Index{analyzer: textproc.MessageAnalyzer}
	assert.Equal(t, `"pars" OR "token"`, idx.MatchExpression("parsing tokens parsing"))
	assert.Equal(t, "", idx.MatchExpression("the"))
}
