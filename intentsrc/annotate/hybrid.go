package annotate

import (
	"context"
	"sync/atomic"

	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/vcs"
)

// hybrid replaces every recent commit that belongs to a cluster with the cluster
// members that are also in the full history of the component.
func (s *Annotator) hybrid(ctx context.Context, g Granularity, blame vcs.BlameResult, c *component.Component) ([]vcs.Commit, error) {
	recent, err := s.recent(ctx, g, blame, c)
	if err != nil {
		return nil, err
	}
	all, err := s.all(ctx, g, c)
	if err != nil {
		return nil, err
	}
	return s.promote(c.Path(), recent, all), nil
}

func (s *Annotator) promote(path string, recent, all []vcs.Commit) (res []vcs.Commit) {
	inAll := map[string]vcs.Commit{}
	for _, c := range all {
		inAll[c.SHA] = c
	}
	seen := map[string]bool{}
	add := func(c vcs.Commit) {
		if seen[c.SHA] {
			return
		}
		seen[c.SHA] = true
		res = append(res, c)
	}
	for _, r := range recent {
		cl, ok := s.clusters.Get(r.SHA)
		if !ok {
			add(r)
			continue
		}
		promoted := 0
		for _, id := range cl.Members() {
			if m, ok := inAll[id]; ok {
				add(m)
				promoted++
			}
		}
		if promoted == 0 {
			atomic.AddInt64(&s.stats.emptyPromotions, 1)
			s.logger.Warn("annotate: clustered commit has no members in full history", "path", path, "commit", r.SHA, "cluster_size", cl.Len())
		}
	}
	return res
}
