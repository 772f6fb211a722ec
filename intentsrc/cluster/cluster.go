// Package cluster groups commits of short-lived branch segments.
//
// A segment is the run of commits visited by a depth-first walk from head
// between two encounters of an already visited commit. Segments of 2 to 50
// commits that do not contain head become clusters.
package cluster

import (
	"sort"
)

const (
	// MinSize is the smallest run that forms a cluster.
	MinSize = 2
	// MaxSize is the largest run that forms a cluster. Longer runs are long-lived branches.
	MaxSize = 50
)

// Cluster is a set of commit ids. It is read-only once built.
type Cluster struct {
	members map[string]bool
	ids     []string
}

func newCluster(ids []string) *Cluster {
	s := &Cluster{}
	s.members = toSet(ids)
	s.ids = append([]string(nil), ids...)
	sort.Strings(s.ids)
	return s
}

// Members returns commit ids in sorted order.
func (s *Cluster) Members() []string {
	return append([]string(nil), s.ids...)
}

func (s *Cluster) Contains(id string) bool {
	return s.members[id]
}

func (s *Cluster) Len() int {
	return len(s.ids)
}

// Lookup maps a commit id to its cluster. Every member of a cluster maps to the same *Cluster.
type Lookup struct {
	byID     map[string]*Cluster
	clusters []*Cluster
}

// Get returns the cluster of id.
func (s Lookup) Get(id string) (*Cluster, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Len returns the number of clusters.
func (s Lookup) Len() int {
	return len(s.clusters)
}

// Clusters returns clusters in the order they were found.
func (s Lookup) Clusters() []*Cluster {
	return append([]*Cluster(nil), s.clusters...)
}

// Build walks parents from head. First parents are explored before other parents.
// A root commit ends the current run without forming a cluster.
func Build(parents map[string][]string, head string) Lookup {
	res := Lookup{byID: map[string]*Cluster{}}
	if head == "" {
		return res
	}
	visited := map[string]bool{}
	var run []string

	finalize := func() {
		defer func() { run = nil }()
		if len(run) < MinSize || len(run) > MaxSize {
			return
		}
		for _, id := range run {
			if id == head {
				return
			}
		}
		c := newCluster(run)
		res.clusters = append(res.clusters, c)
		for _, id := range run {
			res.byID[id] = c
		}
	}

	stack := []string{head}
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			finalize()
			continue
		}
		visited[id] = true
		run = append(run, id)
		par := parents[id]
		if len(par) == 0 {
			run = nil
			continue
		}
		// reverse order so that the first parent is popped first
		for i := len(par) - 1; i >= 0; i-- {
			stack = append(stack, par[i])
		}
	}
	return res
}

func toSet(arr []string) map[string]bool {
	res := map[string]bool{}
	for _, v := range arr {
		res[v] = true
	}
	return res
}
