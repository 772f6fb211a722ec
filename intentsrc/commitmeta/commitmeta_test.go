package commitmeta

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/pkg/testutil"
)

func TestParseRecords(t *testing.T) {
	c1 := "e99cb00954f08c1d33c5935742809868335483bf"
	c2 := "d497eccaf64c229771f471386cf49e4f653a00cb"
	data := "\x1e" + c2 + "\x00" + c1 + "\x00User2\x00user2@example.com\x002018-11-27T22:16:11+01:00\x00fix parser loop\n\nlonger body\n\n" +
		"\x1e" + c1 + "\x00\x00User1\x00user1@example.com\x002018-11-27T22:15:36+01:00\x00initial\n\n"

	var got []Commit
	err := Parse(strings.NewReader(data), func(c Commit) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, c2, got[0].SHA)
	assert.Equal(t, []string{c1}, got[0].Parents)
	assert.Equal(t, "User2", got[0].Author())
	assert.Equal(t, "fix parser loop\n\nlonger body", got[0].Message)
	assert.False(t, got[0].IsMerge())

	assert.Equal(t, c1, got[1].SHA)
	assert.Nil(t, got[1].Parents)
	assert.True(t, got[1].IsRoot())
	assert.Equal(t, "initial", got[1].Message)
	assert.True(t, got[1].Date.Equal(time.Date(2018, 11, 27, 21, 15, 36, 0, time.UTC)))
}

func TestParseMalformed(t *testing.T) {
	err := Parse(strings.NewReader("\x1eabc\x00"), func(c Commit) error { return nil })
	assert.Error(t, err)
}

func TestRunOnRepo(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.WriteLines("a.txt", "a")
	c1 := repo.Commit("add a")
	repo.WriteLines("b.txt", "b")
	c2 := repo.Commit("add b")
	repo.WriteLines("a.txt", "a", "a2")
	c3 := repo.Commit("change a\n\nwith body")

	all, err := New(repo.Dir, Opts{}).RunSlice(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, c3, all[0].SHA)
	assert.Equal(t, "change a\n\nwith body", all[0].Message)
	assert.Equal(t, []string{c2}, all[0].Parents)

	onlyA, err := New(repo.Dir, Opts{Revision: c3, Path: "a.txt", Follow: true}).RunSlice(context.Background())
	require.NoError(t, err)
	var shas []string
	for _, c := range onlyA {
		shas = append(shas, c.SHA)
	}
	assert.Equal(t, []string{c3, c1}, shas)

	byID, err := New(repo.Dir, Opts{Revisions: []string{c2}}).RunMap(context.Background())
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, "add b", byID[c2].Message)
}
