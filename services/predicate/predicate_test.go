package predicate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRow map[Column]Value

func (m mapRow) Value(col Column) (Value, bool) {
	v, ok := m[col]
	return v, ok
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestEqExactDecimal(t *testing.T) {
	expr := Eq("s.pcd_mm", Num(dec(t, "114.3")))

	assert.True(t, expr.Eval(mapRow{"s.pcd_mm": Num(dec(t, "114.300"))}))
	assert.False(t, expr.Eval(mapRow{"s.pcd_mm": Num(dec(t, "114.3000001"))}))
	assert.False(t, expr.Eval(mapRow{}), "NULL never matches")
}

func TestBetweenIsInclusive(t *testing.T) {
	expr := Between("s.offset", Int(-10), Int(10))

	for _, v := range []int64{-10, 0, 10} {
		assert.True(t, expr.Eval(mapRow{"s.offset": Int(v)}), "offset %d", v)
	}
	for _, v := range []int64{-11, 11} {
		assert.False(t, expr.Eval(mapRow{"s.offset": Int(v)}), "offset %d", v)
	}
}

func TestJunctions(t *testing.T) {
	row := mapRow{"s.pcd_lugs": Int(5), "s.status": Str("normal"), "p.winter": Bool(true)}

	assert.True(t, And().Eval(row))
	assert.False(t, Or().Eval(row))
	assert.True(t, And(Eq("s.status", Str("normal")), Eq("p.winter", Bool(true))).Eval(row))
	assert.False(t, And(Eq("s.status", Str("normal")), Eq("p.winter", Bool(false))).Eval(row))
	assert.True(t, Or(Eq("s.pcd_lugs", Int(4)), Eq("s.pcd_lugs", Int(5))).Eval(row))
	assert.True(t, In("s.pcd_lugs", Int(4), Int(5)).Eval(row))
	assert.False(t, In("s.pcd_lugs").Eval(row))
	assert.True(t, NotNull("s.pcd_lugs").Eval(row))
	assert.False(t, NotNull("s.width").Eval(row))
}

func TestSQLCompilation(t *testing.T) {
	expr := And(
		Eq("s.status", Str("normal")),
		Or(
			And(Eq("s.pcd_lugs", Int(5)), Eq("s.pcd_mm", Num(dec(t, "114.3")))),
			And(Eq("s.pcd_lugs", Int(5)), Eq("s.pcd_mm", Num(dec(t, "120")))),
		),
		Between("s.offset", Int(30), Int(35)),
	)

	sql, args := expr.SQL()
	assert.Equal(t,
		"s.status = ? AND ((s.pcd_lugs = ? AND s.pcd_mm = ?) OR (s.pcd_lugs = ? AND s.pcd_mm = ?)) AND s.offset BETWEEN ? AND ?",
		sql)
	require.Len(t, args, 7)
	assert.Equal(t, "normal", args[0])
	assert.Equal(t, int64(5), args[1])
	assert.True(t, dec(t, "114.3").Equal(args[2].(decimal.Decimal)))
	assert.Equal(t, int64(30), args[5])
	assert.Equal(t, int64(35), args[6])
}

func TestSQLEmptyJunctions(t *testing.T) {
	sql, args := And().SQL()
	assert.Equal(t, "1 = 1", sql)
	assert.Empty(t, args)

	sql, _ = Or().SQL()
	assert.Equal(t, "1 = 0", sql)

	sql, _ = In("p.id").SQL()
	assert.Equal(t, "1 = 0", sql)

	sql, args = In("p.id", Int(1), Int(2)).SQL()
	assert.Equal(t, "p.id IN (?, ?)", sql)
	assert.Equal(t, []any{int64(1), int64(2)}, args)
}

func TestAndFlattensNestedConjunctions(t *testing.T) {
	inner := And(Eq("a", Int(1)), Eq("b", Int(2)))
	outer := And(inner, nil, Eq("c", Int(3)))

	sql, args := outer.SQL()
	assert.Equal(t, "a = ? AND b = ? AND c = ?", sql)
	assert.Len(t, args, 3)
	assert.Equal(t, "a = 1 AND b = 2 AND c = 3", outer.String())
}
