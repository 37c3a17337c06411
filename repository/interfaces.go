package repository

import (
	"context"
	"errors"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/predicate"
	"github.com/shopspring/decimal"
)

// ErrVehicleNotFound is returned when no fitment row exists for a vehicle id.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Variant columns (alias s = mini_wheel_product_spec).
const (
	ColVariantProductID predicate.Column = "s.product_id"
	ColVariantStatus    predicate.Column = "s.status"
	ColLugCount         predicate.Column = "s.pcd_lugs"
	ColPitchMM          predicate.Column = "s.pcd_mm"
	ColHubBore          predicate.Column = "s.center_bore"
	ColOffset           predicate.Column = "s.offset"
	ColWidth            predicate.Column = "s.width"
	ColDiameter         predicate.Column = "s.diameter"
	ColSalePrice        predicate.Column = "s.sale_price"
	ColTPMS             predicate.Column = "s.tpmscompatibleswitch"
)

// Product columns (alias p = mini_wheel_product).
const (
	ColProductID     predicate.Column = "p.id"
	ColProductStatus predicate.Column = "p.status"
	ColBrandID       predicate.Column = "p.brand_id"
	ColCenterCap     predicate.Column = "p.center_cap_included"
	ColHubRing       predicate.Column = "p.hub_ring_included"
	ColWinter        predicate.Column = "p.winterapprovedswitch"
)

// ValueCount is the number of distinct products having a variant with Value.
type ValueCount struct {
	Value decimal.Decimal
	Count int
}

// CatalogRepository is the read side of the wheel catalog used by the fitment resolver.
// Variant expressions are written over the s.* columns and product expressions over p.*.
type CatalogRepository interface {
	FindVehicleFitment(ctx context.Context, vehicleID string) (*models.VehicleFitment, error)

	// MatchingProductIDs returns ids of products satisfying productExpr that own at
	// least one variant satisfying variantExpr, ordered weigh DESC, createtime DESC, id DESC.
	MatchingProductIDs(ctx context.Context, variantExpr, productExpr predicate.Expr) ([]int64, error)

	// ListProducts returns the products for ids in the order of ids.
	ListProducts(ctx context.Context, ids []int64) ([]models.WheelProduct, error)

	// ListVariants returns the variants of one product matching expr, ordered weigh DESC, createtime DESC.
	ListVariants(ctx context.Context, productID int64, expr predicate.Expr) ([]models.WheelVariant, error)

	// DistinctVariantValues returns the distinct non-null values of col, ascending.
	DistinctVariantValues(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]decimal.Decimal, error)

	// CountProductsByVariantValue groups matching variants by col, ascending.
	CountProductsByVariantValue(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]ValueCount, error)

	CountProducts(ctx context.Context, productIDs []int64, expr predicate.Expr) (int, error)
}

// BrandRepository lists storefront brands.
type BrandRepository interface {
	ListActive(ctx context.Context) ([]models.WheelBrand, error)
}

// Dataset is a full catalog snapshot, used by the seeder and the in-memory repository.
type Dataset struct {
	Brands   []models.WheelBrand
	Products []models.WheelProduct
	Variants []models.WheelVariant
	Vehicles []models.VehicleFitment
}
