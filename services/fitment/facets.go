package fitment

import (
	"context"
	"fmt"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/Mininormi/mininormi1210/services/predicate"
)

// OffsetBuckets is the fixed offset histogram, inclusive and disjoint, in mm.
var OffsetBuckets = []IntRange{
	{Min: -50, Max: -31},
	{Min: -30, Max: -11},
	{Min: -10, Max: 10},
	{Min: 11, Max: 20},
	{Min: 21, Max: 40},
	{Min: 41, Max: 60},
	{Min: 61, Max: 80},
}

// OffsetBucketLabel renders "21mm-40mm".
func OffsetBucketLabel(b IntRange) string {
	return fmt.Sprintf("%dmm-%dmm", b.Min, b.Max)
}

// facetCandidates re-derives the product ids a facet counts over: the match set
// with the facet's own dimension removed.
func (r *Resolver) facetCandidates(ctx context.Context, ps PredicateSet, dim Dimension) (predicate.Expr, []int64, error) {
	expr := ps.Without(dim)
	ids, err := r.catalog.MatchingProductIDs(ctx, expr, ps.Product())
	if err != nil {
		return nil, nil, err
	}
	return expr, ids, nil
}

func (r *Resolver) diameterFacet(ctx context.Context, ps PredicateSet) ([]int, error) {
	facetQueries.WithLabelValues("diameter").Inc()

	expr, ids, err := r.facetCandidates(ctx, ps, DimDiameter)
	if err != nil {
		return nil, err
	}
	values, err := r.catalog.DistinctVariantValues(ctx, repository.ColDiameter, ids, expr)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v.IntPart()))
	}
	return out, nil
}

func (r *Resolver) widthFacet(ctx context.Context, ps PredicateSet) ([]models.WidthFacetItem, error) {
	facetQueries.WithLabelValues("width").Inc()

	expr, ids, err := r.facetCandidates(ctx, ps, DimWidth)
	if err != nil {
		return nil, err
	}
	counts, err := r.catalog.CountProductsByVariantValue(ctx, repository.ColWidth, ids, expr)
	if err != nil {
		return nil, err
	}

	out := make([]models.WidthFacetItem, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.WidthFacetItem{Value: c.Value.InexactFloat64(), Count: c.Count})
	}
	return out, nil
}

func (r *Resolver) offsetFacet(ctx context.Context, ps PredicateSet) ([]models.OffsetBucketItem, error) {
	facetQueries.WithLabelValues("offset").Inc()

	expr, ids, err := r.facetCandidates(ctx, ps, DimOffset)
	if err != nil {
		return nil, err
	}

	out := make([]models.OffsetBucketItem, 0, len(OffsetBuckets))
	if len(ids) == 0 {
		return out, nil
	}
	for _, b := range OffsetBuckets {
		inBucket := predicate.And(expr, predicate.Between(repository.ColOffset,
			predicate.Int(int64(b.Min)), predicate.Int(int64(b.Max))))
		n, err := r.catalog.CountProducts(ctx, ids, inBucket)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}
		out = append(out, models.OffsetBucketItem{
			Min:   b.Min,
			Max:   b.Max,
			Label: OffsetBucketLabel(b),
			Count: n,
		})
	}
	return out, nil
}
