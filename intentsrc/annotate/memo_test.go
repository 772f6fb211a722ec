package annotate

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/vcs"
)

func TestMemoCachesResults(t *testing.T) {
	m := newMemo()
	var calls int
	compute := func() ([]vcs.Commit, error) {
		calls++
		return []vcs.Commit{{SHA: "c1"}}, nil
	}
	key := keyOf("native", "a.go", "1", "5")

	res, err := m.Get(key, compute)
	require.NoError(t, err)
	assert.Equal(t, "c1", res[0].SHA)
	_, err = m.Get(key, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())

	_, err = m.Get(keyOf("native", "a.go", "1", "6"), compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, m.Len())
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	m := newMemo()
	key := keyOf("ancestry", "a.go")
	boom := errors.New("boom")

	_, err := m.Get(key, func() ([]vcs.Commit, error) { return nil, boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, 0, m.Len())

	res, err := m.Get(key, func() ([]vcs.Commit, error) { return []vcs.Commit{{SHA: "c2"}}, nil })
	require.NoError(t, err)
	assert.Equal(t, "c2", res[0].SHA)
	assert.Equal(t, 1, m.Len())
}

func TestMemoConcurrentGet(t *testing.T) {
	m := newMemo()
	key := keyOf("ancestry", "b.go")
	var calls int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := m.Get(key, func() ([]vcs.Commit, error) {
				atomic.AddInt64(&calls, 1)
				return []vcs.Commit{{SHA: "c3"}}, nil
			})
			assert.NoError(t, err)
			assert.Len(t, res, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
	// a late caller may miss the coalesced call and compute again
	assert.True(t, atomic.LoadInt64(&calls) >= 1)
}

func TestKeyOfSeparatesParts(t *testing.T) {
	assert.NotEqual(t, keyOf("ab", "c"), keyOf("a", "bc"))
	assert.Equal(t, keyOf("a", "b"), keyOf("a", "b"))
}
