package fitment

import (
	"context"
)

// matchProducts returns every product id of the match set, in catalog order.
func (r *Resolver) matchProducts(ctx context.Context, ps PredicateSet) ([]int64, error) {
	return r.catalog.MatchingProductIDs(ctx, ps.Match(), ps.Product())
}

// pageOf slices ids for a 1-based page.
func pageOf(ids []int64, page, pageSize int) []int64 {
	start := (page - 1) * pageSize
	if start >= len(ids) || start < 0 {
		return nil
	}
	end := min(start+pageSize, len(ids))
	return ids[start:end]
}
