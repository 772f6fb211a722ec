package annotate

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"golang.org/x/sync/singleflight"

	"github.com/fusix/intentsrc/intentsrc/vcs"
)

type memoKey uint64

func keyOf(parts ...string) memoKey {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
		b = append(b, 0)
	}
	return memoKey(xxhash.Sum64(b))
}

// memo caches commit lists by key. Concurrent misses on the same key run compute once.
type memo struct {
	mu    sync.Mutex
	data  map[memoKey][]vcs.Commit
	group singleflight.Group
}

func newMemo() *memo {
	return &memo{data: map[memoKey][]vcs.Commit{}}
}

func (s *memo) Get(key memoKey, compute func() ([]vcs.Commit, error)) ([]vcs.Commit, error) {
	s.mu.Lock()
	res, ok := s.data[key]
	s.mu.Unlock()
	if ok {
		return res, nil
	}
	v, err, _ := s.group.Do(strconv.FormatUint(uint64(key), 16), func() (interface{}, error) {
		res, err := compute()
		if err != nil {
			// not cached, a later call retries
			return nil, err
		}
		s.mu.Lock()
		s.data[key] = res
		s.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]vcs.Commit), nil
}

func (s *memo) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
