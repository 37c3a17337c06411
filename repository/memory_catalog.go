package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/predicate"
	"github.com/shopspring/decimal"
)

// MemoryCatalogRepository serves a Dataset from memory by evaluating the
// predicate trees directly. It backs the seeder's offline resolve and the tests.
type MemoryCatalogRepository struct {
	mu       sync.RWMutex
	brands   []models.WheelBrand
	products []models.WheelProduct
	variants []models.WheelVariant
	vehicles map[string]models.VehicleFitment
}

func NewMemoryCatalogRepository(ds Dataset) *MemoryCatalogRepository {
	r := &MemoryCatalogRepository{}
	r.Load(ds)
	return r
}

// Load replaces the whole snapshot.
func (r *MemoryCatalogRepository) Load(ds Dataset) {
	vehicles := make(map[string]models.VehicleFitment, len(ds.Vehicles))
	for _, v := range ds.Vehicles {
		vehicles[v.VehicleID] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.brands = slices.Clone(ds.Brands)
	r.products = slices.Clone(ds.Products)
	r.variants = slices.Clone(ds.Variants)
	r.vehicles = vehicles
}

func (r *MemoryCatalogRepository) FindVehicleFitment(ctx context.Context, vehicleID string) (*models.VehicleFitment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[vehicleID]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return &v, nil
}

func (r *MemoryCatalogRepository) MatchingProductIDs(ctx context.Context, variantExpr, productExpr predicate.Expr) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	vExpr := predicate.And(variantExpr)
	pExpr := predicate.And(productExpr)

	withVariant := make(map[int64]bool)
	for i := range r.variants {
		if vExpr.Eval(variantRow{&r.variants[i]}) {
			withVariant[r.variants[i].ProductID] = true
		}
	}

	var matched []models.WheelProduct
	for i := range r.products {
		p := &r.products[i]
		if withVariant[p.ID] && pExpr.Eval(productRow{p}) {
			matched = append(matched, *p)
		}
	}
	slices.SortStableFunc(matched, compareCatalogOrder)

	ids := make([]int64, len(matched))
	for i, p := range matched {
		ids[i] = p.ID
	}
	return ids, nil
}

// compareCatalogOrder sorts by weigh DESC, createtime DESC, id DESC.
func compareCatalogOrder(a, b models.WheelProduct) int {
	switch {
	case a.Weigh != b.Weigh:
		return b.Weigh - a.Weigh
	case a.CreateTime != b.CreateTime:
		if a.CreateTime > b.CreateTime {
			return -1
		}
		return 1
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}

func (r *MemoryCatalogRepository) ListProducts(ctx context.Context, ids []int64) ([]models.WheelProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[int64]models.WheelProduct, len(r.products))
	for _, p := range r.products {
		byID[p.ID] = p
	}
	out := make([]models.WheelProduct, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryCatalogRepository) ListVariants(ctx context.Context, productID int64, expr predicate.Expr) ([]models.WheelVariant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	where := predicate.And(predicate.Eq(ColVariantProductID, predicate.Int(productID)), expr)
	var out []models.WheelVariant
	for i := range r.variants {
		if where.Eval(variantRow{&r.variants[i]}) {
			out = append(out, r.variants[i])
		}
	}
	slices.SortStableFunc(out, func(a, b models.WheelVariant) int {
		switch {
		case a.Weigh != b.Weigh:
			return b.Weigh - a.Weigh
		case a.CreateTime > b.CreateTime:
			return -1
		case a.CreateTime < b.CreateTime:
			return 1
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

func (r *MemoryCatalogRepository) DistinctVariantValues(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]decimal.Decimal, error) {
	counts, err := r.CountProductsByVariantValue(ctx, col, productIDs, expr)
	if err != nil {
		return nil, err
	}
	values := make([]decimal.Decimal, len(counts))
	for i, c := range counts {
		values[i] = c.Value
	}
	return values, nil
}

func (r *MemoryCatalogRepository) CountProductsByVariantValue(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]ValueCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []ValueCount{}, nil
	}
	if err := checkVariantColumn(col); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	where := variantScope(col, productIDs, expr)

	type group struct {
		value    decimal.Decimal
		products map[int64]bool
	}
	var groups []*group
	for i := range r.variants {
		row := variantRow{&r.variants[i]}
		if !where.Eval(row) {
			continue
		}
		v, _ := row.Value(col)
		idx := slices.IndexFunc(groups, func(g *group) bool { return g.value.Equal(v.Decimal()) })
		if idx < 0 {
			groups = append(groups, &group{value: v.Decimal(), products: map[int64]bool{}})
			idx = len(groups) - 1
		}
		groups[idx].products[r.variants[i].ProductID] = true
	}
	slices.SortFunc(groups, func(a, b *group) int { return a.value.Cmp(b.value) })

	out := make([]ValueCount, len(groups))
	for i, g := range groups {
		out[i] = ValueCount{Value: g.value, Count: len(g.products)}
	}
	return out, nil
}

func (r *MemoryCatalogRepository) CountProducts(ctx context.Context, productIDs []int64, expr predicate.Expr) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(productIDs) == 0 {
		return 0, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	where := predicate.And(productIDsIn(ColVariantProductID, productIDs), expr)
	seen := make(map[int64]bool)
	for i := range r.variants {
		if where.Eval(variantRow{&r.variants[i]}) {
			seen[r.variants[i].ProductID] = true
		}
	}
	return len(seen), nil
}

func (r *MemoryCatalogRepository) ListActive(ctx context.Context) ([]models.WheelBrand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.WheelBrand
	for _, b := range r.brands {
		if b.Status == models.StatusNormal {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b models.WheelBrand) int {
		switch {
		case a.Weigh != b.Weigh:
			return b.Weigh - a.Weigh
		case a.CreateTime > b.CreateTime:
			return -1
		case a.CreateTime < b.CreateTime:
			return 1
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

// variantRow exposes a WheelVariant to predicate evaluation.
type variantRow struct{ v *models.WheelVariant }

func (r variantRow) Value(col predicate.Column) (predicate.Value, bool) {
	v := r.v
	switch col {
	case ColVariantProductID:
		return predicate.Int(v.ProductID), true
	case ColVariantStatus:
		return predicate.Str(v.Status), true
	case ColLugCount:
		return optInt(v.PcdLugs)
	case ColPitchMM:
		return optDecimal(v.PcdMM)
	case ColHubBore:
		return optDecimal(v.CenterBore)
	case ColOffset:
		return optInt(v.Offset)
	case ColWidth:
		return optDecimal(v.Width)
	case ColDiameter:
		return optInt(v.Diameter)
	case ColSalePrice:
		return optDecimal(v.SalePrice)
	case ColTPMS:
		return predicate.Bool(v.TPMSCompatible), true
	}
	return predicate.Value{}, false
}

// productRow exposes a WheelProduct to predicate evaluation.
type productRow struct{ p *models.WheelProduct }

func (r productRow) Value(col predicate.Column) (predicate.Value, bool) {
	p := r.p
	switch col {
	case ColProductID:
		return predicate.Int(p.ID), true
	case ColProductStatus:
		return predicate.Str(p.Status), true
	case ColBrandID:
		if p.BrandID == nil {
			return predicate.Value{}, false
		}
		return predicate.Int(*p.BrandID), true
	case ColCenterCap:
		return predicate.Bool(p.CenterCapIncluded), true
	case ColHubRing:
		return predicate.Bool(p.HubRingIncluded), true
	case ColWinter:
		return predicate.Bool(p.WinterApproved), true
	}
	return predicate.Value{}, false
}

func optInt(i *int) (predicate.Value, bool) {
	if i == nil {
		return predicate.Value{}, false
	}
	return predicate.Int(int64(*i)), true
}

func optDecimal(d decimal.NullDecimal) (predicate.Value, bool) {
	if !d.Valid {
		return predicate.Value{}, false
	}
	return predicate.Num(d.Decimal), true
}
