package fitment

import (
	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	p "github.com/Mininormi/mininormi1210/services/predicate"
	"github.com/shopspring/decimal"
)

// Dimension tags a user filter so a facet can drop its own.
type Dimension string

const (
	DimPrice    Dimension = "price"
	DimWidth    Dimension = "width"
	DimOffset   Dimension = "offset"
	DimTPMS     Dimension = "tpms"
	DimDiameter Dimension = "diameter"
)

// DecimalBounds is an inclusive range where either end may be open.
type DecimalBounds struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (b *DecimalBounds) active() bool { return b != nil && (b.Min != nil || b.Max != nil) }

type IntBounds struct {
	Min *int
	Max *int
}

func (b *IntBounds) active() bool { return b != nil && (b.Min != nil || b.Max != nil) }

// Filters are the user adjustable constraints of a request.
type Filters struct {
	Diameter          *int
	BrandID           *int64
	Price             *DecimalBounds
	Width             *DecimalBounds
	Offset            *IntBounds
	TPMSCompatible    *bool
	CenterCapIncluded *bool
	HubRingIncluded   *bool
	WinterApproved    *bool
}

type filterPredicate struct {
	dim  Dimension
	expr p.Expr
}

// PredicateSet is immutable once built.
type PredicateSet struct {
	base    []p.Expr
	filters []filterPredicate
	product []p.Expr
}

// BuildPredicates turns effective axle values and filters into predicate trees.
// Unknown effective values add no predicate.
func BuildPredicates(eff Effective, f Filters) PredicateSet {
	var ps PredicateSet

	ps.base = append(ps.base, p.Eq(repository.ColVariantStatus, p.Str(models.StatusNormal)))

	patterns := make([]p.Expr, 0, len(eff.BoltPatterns))
	for _, bp := range eff.BoltPatterns {
		patterns = append(patterns, p.And(
			p.Eq(repository.ColLugCount, p.Int(int64(bp.Lugs))),
			p.Eq(repository.ColPitchMM, p.Num(bp.PitchMM)),
		))
	}
	if !eff.AnyPattern {
		ps.base = append(ps.base, p.Or(patterns...))
	}

	if eff.HubBoreMin != nil {
		ps.base = append(ps.base, p.Gte(repository.ColHubBore, p.Num(*eff.HubBoreMin)))
	}
	if eff.Offset != nil {
		ps.base = append(ps.base, p.Between(repository.ColOffset,
			p.Int(int64(eff.Offset.Min)), p.Int(int64(eff.Offset.Max))))
	}
	if eff.Width != nil {
		ps.base = append(ps.base, p.Between(repository.ColWidth, p.Num(eff.Width.Min), p.Num(eff.Width.Max)))
	}

	if f.Price.active() {
		ps.addFilter(DimPrice, decimalBounds(repository.ColSalePrice, f.Price))
	}
	if f.Width.active() {
		ps.addFilter(DimWidth, decimalBounds(repository.ColWidth, f.Width))
	}
	if f.Offset.active() {
		ps.addFilter(DimOffset, intBounds(repository.ColOffset, f.Offset))
	}
	if f.TPMSCompatible != nil {
		ps.addFilter(DimTPMS, p.Eq(repository.ColTPMS, p.Bool(*f.TPMSCompatible)))
	}
	if f.Diameter != nil {
		ps.addFilter(DimDiameter, p.Eq(repository.ColDiameter, p.Int(int64(*f.Diameter))))
	}

	ps.product = append(ps.product, p.Eq(repository.ColProductStatus, p.Str(models.StatusNormal)))
	if f.BrandID != nil {
		ps.product = append(ps.product, p.Eq(repository.ColBrandID, p.Int(*f.BrandID)))
	}
	if f.CenterCapIncluded != nil {
		ps.product = append(ps.product, p.Eq(repository.ColCenterCap, p.Bool(*f.CenterCapIncluded)))
	}
	if f.HubRingIncluded != nil {
		ps.product = append(ps.product, p.Eq(repository.ColHubRing, p.Bool(*f.HubRingIncluded)))
	}
	if f.WinterApproved != nil {
		ps.product = append(ps.product, p.Eq(repository.ColWinter, p.Bool(*f.WinterApproved)))
	}

	return ps
}

func (ps *PredicateSet) addFilter(dim Dimension, expr p.Expr) {
	ps.filters = append(ps.filters, filterPredicate{dim: dim, expr: expr})
}

// Base is the axle driven part; no facet ever removes it.
func (ps PredicateSet) Base() p.Expr { return p.And(ps.base...) }

// Match is Base plus every filter.
func (ps PredicateSet) Match() p.Expr {
	parts := append([]p.Expr{}, ps.base...)
	for _, f := range ps.filters {
		parts = append(parts, f.expr)
	}
	return p.And(parts...)
}

// Without is Match minus the filters of one dimension.
func (ps PredicateSet) Without(dim Dimension) p.Expr {
	parts := append([]p.Expr{}, ps.base...)
	for _, f := range ps.filters {
		if f.dim != dim {
			parts = append(parts, f.expr)
		}
	}
	return p.And(parts...)
}

// Product holds the product level filters, including status = normal.
func (ps PredicateSet) Product() p.Expr { return p.And(ps.product...) }

func decimalBounds(col p.Column, b *DecimalBounds) p.Expr {
	switch {
	case b.Min != nil && b.Max != nil:
		return p.Between(col, p.Num(*b.Min), p.Num(*b.Max))
	case b.Min != nil:
		return p.Gte(col, p.Num(*b.Min))
	default:
		return p.Lte(col, p.Num(*b.Max))
	}
}

func intBounds(col p.Column, b *IntBounds) p.Expr {
	switch {
	case b.Min != nil && b.Max != nil:
		return p.Between(col, p.Int(int64(*b.Min)), p.Int(int64(*b.Max)))
	case b.Min != nil:
		return p.Gte(col, p.Int(int64(*b.Min)))
	default:
		return p.Lte(col, p.Int(int64(*b.Max)))
	}
}
