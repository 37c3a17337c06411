package fitment

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func effectiveFor(t *testing.T) Effective {
	t.Helper()
	bp, ok := ParseBoltPattern("5x114.3")
	require.True(t, ok)
	hub := dec(t, "60.1")
	return Effective{
		BoltPatterns: []BoltPattern{bp},
		HubBoreMin:   &hub,
		Offset:       &IntRange{Min: 30, Max: 45},
		Width:        &DecimalRange{Min: dec(t, "7"), Max: dec(t, "9")},
	}
}

func TestBuildPredicatesBase(t *testing.T) {
	ps := BuildPredicates(effectiveFor(t), Filters{})

	sql, args := ps.Base().SQL()
	assert.Equal(t,
		"s.status = ? AND s.pcd_lugs = ? AND s.pcd_mm = ? AND s.center_bore >= ? AND s.offset BETWEEN ? AND ? AND s.width BETWEEN ? AND ?",
		sql)
	require.Len(t, args, 8)
	assert.Equal(t, "normal", args[0])

	matchSQL, _ := ps.Match().SQL()
	assert.Equal(t, sql, matchSQL, "no filters means match == base")

	productSQL, productArgs := ps.Product().SQL()
	assert.Equal(t, "p.status = ?", productSQL)
	assert.Equal(t, []any{"normal"}, productArgs)
}

func TestBuildPredicatesSkipsUnknownValues(t *testing.T) {
	bp, _ := ParseBoltPattern("4x100")
	ps := BuildPredicates(Effective{BoltPatterns: []BoltPattern{bp}}, Filters{})

	sql, _ := ps.Base().SQL()
	assert.Equal(t, "s.status = ? AND s.pcd_lugs = ? AND s.pcd_mm = ?", sql)
}

func TestBuildPredicatesMultiplePatterns(t *testing.T) {
	a, _ := ParseBoltPattern("5x114.3")
	b, _ := ParseBoltPattern("5x120")
	ps := BuildPredicates(Effective{BoltPatterns: []BoltPattern{a, b}}, Filters{})

	sql, _ := ps.Base().SQL()
	assert.Equal(t, "s.status = ? AND ((s.pcd_lugs = ? AND s.pcd_mm = ?) OR (s.pcd_lugs = ? AND s.pcd_mm = ?))", sql)
}

func TestBuildPredicatesAnyPattern(t *testing.T) {
	ps := BuildPredicates(Effective{AnyPattern: true}, Filters{Diameter: ptr(18)})

	sql, _ := ps.Base().SQL()
	assert.Equal(t, "s.status = ?", sql)
	sql, args := ps.Match().SQL()
	assert.Equal(t, "s.status = ? AND s.diameter = ?", sql)
	assert.Equal(t, []any{"normal", int64(18)}, args)

	sql, _ = BuildPredicates(Effective{}, Filters{}).Base().SQL()
	assert.Equal(t, "s.status = ? AND (1 = 0)", sql)
}

func TestWithoutDropsOnlyItsDimension(t *testing.T) {
	minW, maxW := decimal.NewFromInt(8), decimal.NewFromInt(9)
	filters := Filters{
		Diameter:       ptr(18),
		Width:          &DecimalBounds{Min: &minW, Max: &maxW},
		Offset:         &IntBounds{Min: ptr(35)},
		Price:          &DecimalBounds{Max: ptr(decimal.NewFromInt(500))},
		TPMSCompatible: ptr(true),
		BrandID:        ptr(int64(3)),
		WinterApproved: ptr(false),
	}
	ps := BuildPredicates(effectiveFor(t), filters)

	match, _ := ps.Match().SQL()
	for _, frag := range []string{"s.diameter = ?", "s.offset >= ?", "s.sale_price <= ?", "s.tpmscompatibleswitch = ?"} {
		assert.Contains(t, match, frag)
	}
	assert.Equal(t, 2, strings.Count(match, "s.width BETWEEN"), "axle band and user range both apply")

	noWidth, _ := ps.Without(DimWidth).SQL()
	assert.Equal(t, 1, strings.Count(noWidth, "s.width BETWEEN"), "axle band survives")
	assert.Contains(t, noWidth, "s.diameter = ?")

	noDiameter, _ := ps.Without(DimDiameter).SQL()
	assert.NotContains(t, noDiameter, "s.diameter")
	assert.Equal(t, 2, strings.Count(noDiameter, "s.width BETWEEN"))

	noOffset, _ := ps.Without(DimOffset).SQL()
	assert.NotContains(t, noOffset, "s.offset >= ?")
	assert.Contains(t, noOffset, "s.offset BETWEEN ? AND ?", "axle offset range survives")

	product, args := ps.Product().SQL()
	assert.Equal(t, "p.status = ? AND p.brand_id = ? AND p.winterapprovedswitch = ?", product)
	assert.Equal(t, []any{"normal", int64(3), false}, args)
}
