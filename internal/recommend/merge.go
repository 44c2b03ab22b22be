package recommend

import "sort"

// Merge combines two prioritized sets into one, deduplicating by audit
// identifier and keeping the higher-savings copy of duplicates. The
// result is re-sorted, re-grouped, and re-summarized. Either argument
// may be nil.
func Merge(a, b *Prioritized) *Prioritized {
	seen := make(map[string]Recommendation)
	order := make([]string, 0)

	collect := func(p *Prioritized) {
		if p == nil {
			return
		}
		for _, group := range p.Groups {
			for _, rec := range group.Recommendations {
				existing, ok := seen[rec.ID]
				if !ok {
					seen[rec.ID] = rec
					order = append(order, rec.ID)
					continue
				}
				if rec.SavingsMs > existing.SavingsMs {
					seen[rec.ID] = rec
				}
			}
		}
	}
	collect(a)
	collect(b)

	recs := make([]Recommendation, 0, len(order))
	for _, id := range order {
		recs = append(recs, seen[id])
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	return &Prioritized{
		Groups:  groupByCategory(recs),
		Summary: summarize(recs),
	}
}
