package fitment

import (
	"context"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// assemble builds the page. Each product's variants are re-fetched with the
// match predicates and a product left with none is dropped.
func (r *Resolver) assemble(ctx context.Context, ps PredicateSet, ids []int64) ([]models.WheelProductResponse, error) {
	items := []models.WheelProductResponse{}
	if len(ids) == 0 {
		return items, nil
	}

	products, err := r.catalog.ListProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	match := ps.Match()
	variants := make([][]models.WheelVariant, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.assembleWorkers)
	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			vs, err := r.catalog.ListVariants(gctx, product.ID, match)
			if err != nil {
				return err
			}
			variants[i] = vs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, product := range products {
		if len(variants[i]) == 0 {
			continue
		}
		items = append(items, productResponse(product, variants[i]))
	}
	return items, nil
}

func productResponse(p models.WheelProduct, variants []models.WheelVariant) models.WheelProductResponse {
	var sale, original decimal.NullDecimal
	stock := 0
	out := make([]models.WheelVariantResponse, 0, len(variants))

	for _, v := range variants {
		sale = minNull(sale, v.SalePrice)
		original = minNull(original, v.OriginalPrice)
		stock += v.Stock
		out = append(out, variantResponse(v))
	}

	return models.WheelProductResponse{
		ProductID:     p.ID,
		Name:          p.Name,
		BrandID:       p.BrandID,
		Image:         p.Image,
		SalePrice:     floatPtr(sale),
		OriginalPrice: floatPtr(original),
		Stock:         stock,
		Status:        p.Status,
		Variants:      out,
	}
}

func variantResponse(v models.WheelVariant) models.WheelVariantResponse {
	return models.WheelVariantResponse{
		VariantID:     v.ID,
		Size:          v.Size,
		Diameter:      v.Diameter,
		Width:         floatPtr(v.Width),
		BoltPattern:   v.BoltPatternText(),
		Offset:        v.Offset,
		HubBore:       floatPtr(v.CenterBore),
		Price:         floatPtr(v.SalePrice),
		OriginalPrice: floatPtr(v.OriginalPrice),
		Stock:         v.Stock,
	}
}

func minNull(cur, next decimal.NullDecimal) decimal.NullDecimal {
	if !next.Valid {
		return cur
	}
	if !cur.Valid || next.Decimal.LessThan(cur.Decimal) {
		return next
	}
	return cur
}

func floatPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
