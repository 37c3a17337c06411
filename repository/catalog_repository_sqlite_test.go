package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/predicate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteCatalog migrates an in-memory sqlite database and imports ds into it.
func newSQLiteCatalog(t *testing.T, ds Dataset) *GormCatalogRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := NewCatalogRepository(db)
	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Import(context.Background(), ds))
	return repo
}

func variantIDs(variants []models.WheelVariant) []int64 {
	ids := make([]int64, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	return ids
}

func assertSameValues(t *testing.T, want, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "value %d: want %s, got %s", i, want[i], got[i])
	}
}

func TestGormCatalogMatchesMemory(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCatalogRepository(fixture())
	db := newSQLiteCatalog(t, fixture())

	normal := predicate.Eq(ColVariantStatus, predicate.Str(models.StatusNormal))
	tests := []struct {
		name    string
		variant predicate.Expr
		product predicate.Expr
		want    []int64
	}{
		{
			name: "no filters",
			want: []int64{3, 4, 2, 1},
		},
		{
			name:    "bolt pattern",
			variant: predicate.And(normal, predicate.Eq(ColLugCount, predicate.Int(5)), predicate.Eq(ColPitchMM, predicate.Num(decimal.RequireFromString("114.30")))),
			product: predicate.Eq(ColProductStatus, predicate.Str(models.StatusNormal)),
			want:    []int64{3, 2, 1},
		},
		{
			name:    "width and offset range",
			variant: predicate.And(predicate.Eq(ColWidth, predicate.Num(decimal.RequireFromString("8.5"))), predicate.Between(ColOffset, predicate.Int(30), predicate.Int(50))),
			want:    []int64{1},
		},
		{
			name:    "top level or stays inside each clause",
			variant: predicate.Or(predicate.Eq(ColDiameter, predicate.Int(18)), predicate.Eq(ColDiameter, predicate.Int(20))),
			product: predicate.Or(predicate.Eq(ColBrandID, predicate.Int(1)), predicate.Eq(ColProductStatus, predicate.Str(models.StatusNormal))),
			want:    []int64{3, 2, 1},
		},
		{
			name:    "product filter",
			variant: predicate.NotNull(ColWidth),
			product: predicate.In(ColProductID, predicate.Int(1), predicate.Int(2)),
			want:    []int64{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromMemory, err := mem.MatchingProductIDs(ctx, tt.variant, tt.product)
			require.NoError(t, err)
			fromDB, err := db.MatchingProductIDs(ctx, tt.variant, tt.product)
			require.NoError(t, err)

			assert.Equal(t, tt.want, fromMemory)
			assert.Equal(t, tt.want, fromDB)
		})
	}
}

func TestGormFacetQueriesMatchMemory(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCatalogRepository(fixture())
	db := newSQLiteCatalog(t, fixture())
	all := []int64{1, 2, 3, 4}

	for _, col := range []predicate.Column{ColDiameter, ColWidth, ColOffset} {
		t.Run(string(col), func(t *testing.T) {
			want, err := mem.DistinctVariantValues(ctx, col, all, nil)
			require.NoError(t, err)
			got, err := db.DistinctVariantValues(ctx, col, all, nil)
			require.NoError(t, err)
			assertSameValues(t, want, got)

			wantCounts, err := mem.CountProductsByVariantValue(ctx, col, all, nil)
			require.NoError(t, err)
			gotCounts, err := db.CountProductsByVariantValue(ctx, col, all, nil)
			require.NoError(t, err)
			require.Len(t, gotCounts, len(wantCounts))
			for i := range wantCounts {
				assert.True(t, wantCounts[i].Value.Equal(gotCounts[i].Value))
				assert.Equal(t, wantCounts[i].Count, gotCounts[i].Count)
			}
		})
	}

	widths, err := db.CountProductsByVariantValue(ctx, ColWidth, all, nil)
	require.NoError(t, err)
	require.Len(t, widths, 3, "8.50 and 8.5 are one value")
	assert.Equal(t, 2, widths[1].Count)

	diameters, err := db.DistinctVariantValues(ctx, ColDiameter, []int64{1, 2}, predicate.Gte(ColOffset, predicate.Int(30)))
	require.NoError(t, err)
	require.Len(t, diameters, 2)
	assert.Equal(t, "18", diameters[0].String())
	assert.Equal(t, "19", diameters[1].String())

	n, err := db.CountProducts(ctx, all, predicate.Between(ColOffset, predicate.Int(21), predicate.Int(40)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.CountProducts(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = db.CountProductsByVariantValue(ctx, ColVariantStatus, all, nil)
	assert.Error(t, err)
}

func TestGormListQueries(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCatalogRepository(fixture())
	db := newSQLiteCatalog(t, fixture())

	products, err := db.ListProducts(ctx, []int64{3, 99, 1})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(3), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)

	for _, expr := range []predicate.Expr{nil, predicate.Gte(ColOffset, predicate.Int(40))} {
		want, err := mem.ListVariants(ctx, 1, expr)
		require.NoError(t, err)
		got, err := db.ListVariants(ctx, 1, expr)
		require.NoError(t, err)
		assert.Equal(t, variantIDs(want), variantIDs(got))
	}

	variants, err := db.ListVariants(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.True(t, variants[1].Width.Valid)
	assert.Equal(t, "8.5", variants[1].Width.Decimal.String())
	assert.Equal(t, "5x114.3", variants[0].BoltPatternText())

	wantBrands, err := mem.ListActive(ctx)
	require.NoError(t, err)
	gotBrands, err := db.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, gotBrands, len(wantBrands))
	for i := range wantBrands {
		assert.Equal(t, wantBrands[i].Name, gotBrands[i].Name)
	}

	v, err := db.FindVehicleFitment(ctx, "civic")
	require.NoError(t, err)
	assert.Equal(t, "civic", v.VehicleID)

	_, err = db.FindVehicleFitment(ctx, "golf")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestGormImportUpserts(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteCatalog(t, fixture())

	again := Dataset{
		Brands: []models.WheelBrand{
			{ID: 1, Name: "Enkei Wheels", Status: models.StatusNormal, Weigh: 1, CreateTime: 10},
			{ID: 4, Name: "Rays", Status: models.StatusHidden, Weigh: 1, CreateTime: 20},
		},
	}
	require.NoError(t, db.Import(ctx, again))

	brands, err := db.ListActive(ctx)
	require.NoError(t, err)
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"BBS", "Enkei Wheels"}, names)

	ids, err := db.MatchingProductIDs(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 4, "products are untouched by a brands only import")
}
