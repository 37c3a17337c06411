package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/predicate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements CatalogRepository and BrandRepository on gorm.
// The same SQL runs on postgres and on the FastAdmin mysql schema.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a gorm backed catalog repository.
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

const (
	productTable = "mini_wheel_product"
	variantTable = "mini_wheel_product_spec"
)

func (r *GormCatalogRepository) FindVehicleFitment(ctx context.Context, vehicleID string) (*models.VehicleFitment, error) {
	var fitment models.VehicleFitment
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		First(&fitment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fitment, nil
}

func (r *GormCatalogRepository) MatchingProductIDs(ctx context.Context, variantExpr, productExpr predicate.Expr) ([]int64, error) {
	query, args := matchingProductsSQL(variantExpr, productExpr)

	var ids []int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// matchingProductsSQL renders the product id query. The EXISTS keeps products
// distinct without a GROUP BY. Both fragments are parenthesized so a top level
// OR stays inside its own clause.
func matchingProductsSQL(variantExpr, productExpr predicate.Expr) (string, []any) {
	productWhere, productArgs := predicate.And(productExpr).SQL()
	variantWhere, variantArgs := predicate.And(variantExpr).SQL()

	query := fmt.Sprintf(`
		SELECT p.id
		FROM %s p
		WHERE (%s)
		  AND EXISTS (
			SELECT 1 FROM %s s
			WHERE s.product_id = p.id AND (%s)
		  )
		ORDER BY p.weigh DESC, p.createtime DESC, p.id DESC
	`, productTable, productWhere, variantTable, variantWhere)

	return query, append(productArgs, variantArgs...)
}

func (r *GormCatalogRepository) ListProducts(ctx context.Context, ids []int64) ([]models.WheelProduct, error) {
	if len(ids) == 0 {
		return []models.WheelProduct{}, nil
	}

	var products []models.WheelProduct
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]models.WheelProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]models.WheelProduct, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *GormCatalogRepository) ListVariants(ctx context.Context, productID int64, expr predicate.Expr) ([]models.WheelVariant, error) {
	where, args := predicate.And(predicate.Eq(ColVariantProductID, predicate.Int(productID)), expr).SQL()

	var variants []models.WheelVariant
	err := r.db.WithContext(ctx).
		Table(variantTable+" AS s").
		Select("s.*").
		Where(where, args...).
		Order("s.weigh DESC, s.createtime DESC, s.id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

type valueRow struct {
	Value decimal.Decimal `gorm:"column:value"`
	Count int             `gorm:"column:cnt"`
}

func (r *GormCatalogRepository) DistinctVariantValues(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return []decimal.Decimal{}, nil
	}
	if err := checkVariantColumn(col); err != nil {
		return nil, err
	}

	where, args := variantScope(col, productIDs, expr).SQL()
	query := fmt.Sprintf(`
		SELECT DISTINCT %s AS value
		FROM %s s
		WHERE %s
		ORDER BY value ASC
	`, col, variantTable, where)

	var rows []valueRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	values := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		values[i] = row.Value
	}
	return values, nil
}

func (r *GormCatalogRepository) CountProductsByVariantValue(ctx context.Context, col predicate.Column, productIDs []int64, expr predicate.Expr) ([]ValueCount, error) {
	if len(productIDs) == 0 {
		return []ValueCount{}, nil
	}
	if err := checkVariantColumn(col); err != nil {
		return nil, err
	}

	where, args := variantScope(col, productIDs, expr).SQL()
	query := fmt.Sprintf(`
		SELECT %s AS value, COUNT(DISTINCT s.product_id) AS cnt
		FROM %s s
		WHERE %s
		GROUP BY %s
		ORDER BY %s ASC
	`, col, variantTable, where, col, col)

	var rows []valueRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make([]ValueCount, len(rows))
	for i, row := range rows {
		counts[i] = ValueCount{Value: row.Value, Count: row.Count}
	}
	return counts, nil
}

func (r *GormCatalogRepository) CountProducts(ctx context.Context, productIDs []int64, expr predicate.Expr) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	where, args := predicate.And(productIDsIn(ColVariantProductID, productIDs), expr).SQL()
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT s.product_id) FROM %s s WHERE %s`, variantTable, where)

	var total int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *GormCatalogRepository) ListActive(ctx context.Context) ([]models.WheelBrand, error) {
	var brands []models.WheelBrand
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusNormal).
		Order("weigh DESC, createtime DESC, id DESC").
		Find(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// Import upserts a dataset by primary key.
func (r *GormCatalogRepository) Import(ctx context.Context, ds Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A fresh statement per table; a reused chain keeps the first model.
		upsert := func() *gorm.DB { return tx.Clauses(clause.OnConflict{UpdateAll: true}) }
		if len(ds.Brands) > 0 {
			if err := upsert().Create(&ds.Brands).Error; err != nil {
				return fmt.Errorf("import brands: %w", err)
			}
		}
		if len(ds.Products) > 0 {
			if err := upsert().Create(&ds.Products).Error; err != nil {
				return fmt.Errorf("import products: %w", err)
			}
		}
		if len(ds.Variants) > 0 {
			if err := upsert().Create(&ds.Variants).Error; err != nil {
				return fmt.Errorf("import variants: %w", err)
			}
		}
		if len(ds.Vehicles) > 0 {
			if err := upsert().Create(&ds.Vehicles).Error; err != nil {
				return fmt.Errorf("import vehicles: %w", err)
			}
		}
		return nil
	})
}

// Migrate creates the catalog tables when they do not exist yet.
func (r *GormCatalogRepository) Migrate() error {
	return r.db.AutoMigrate(
		&models.WheelBrand{},
		&models.WheelProduct{},
		&models.WheelVariant{},
		&models.VehicleFitment{},
	)
}

func variantScope(col predicate.Column, productIDs []int64, expr predicate.Expr) predicate.Expr {
	return predicate.And(
		productIDsIn(ColVariantProductID, productIDs),
		predicate.NotNull(col),
		expr,
	)
}

func productIDsIn(col predicate.Column, ids []int64) predicate.Expr {
	vals := make([]predicate.Value, len(ids))
	for i, id := range ids {
		vals[i] = predicate.Int(id)
	}
	return predicate.In(col, vals...)
}

// checkVariantColumn guards the columns interpolated into facet queries.
func checkVariantColumn(col predicate.Column) error {
	switch col {
	case ColDiameter, ColWidth, ColOffset, ColHubBore, ColPitchMM, ColLugCount, ColSalePrice:
		return nil
	}
	if !strings.HasPrefix(string(col), "s.") {
		return fmt.Errorf("column %q is not a variant column", col)
	}
	return fmt.Errorf("column %q cannot be aggregated", col)
}
