package fitment

import (
	"testing"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParseBoltPattern(t *testing.T) {
	tests := []struct {
		in    string
		lugs  int
		pitch string
		ok    bool
	}{
		{"5x114.3", 5, "114.3", true},
		{"5X114.3", 5, "114.3", true},
		{"5×114.3", 5, "114.3", true},
		{"  5x120.65 ", 5, "120.65", true},
		{"4x100", 4, "100", true},
		{"6x139.7", 6, "139.7", true},
		{"10x335.125", 10, "335.125", true},
		{"5-114.3", 0, "", false},
		{"5x114.3456", 0, "", false},
		{"123x100", 0, "", false},
		{"5x9", 0, "", false},
		{"0x100", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bp, ok := ParseBoltPattern(tt.in)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.lugs, bp.Lugs)
			assert.True(t, dec(t, tt.pitch).Equal(bp.PitchMM), "pitch %s", bp.PitchMM)
		})
	}
}

func TestParseBoltPatternRoundTrip(t *testing.T) {
	for _, s := range []string{"4x100", "5x114.3", "5x120.65", "6x139.7", "8x165.1"} {
		bp, ok := ParseBoltPattern(s)
		require.True(t, ok, s)
		assert.Equal(t, s, bp.String())

		again, ok := ParseBoltPattern(bp.String())
		require.True(t, ok)
		assert.True(t, bp.Equal(again))
	}
}

func TestParseDecimalField(t *testing.T) {
	for _, in := range []*string{nil, ptr(""), ptr("  "), ptr("0"), ptr("0.0"), ptr("n/a")} {
		_, ok := ParseDecimalField(in)
		assert.False(t, ok)
	}

	d, ok := ParseDecimalField(ptr("56.1"))
	require.True(t, ok)
	assert.True(t, dec(t, "56.1").Equal(d))
	assert.Equal(t, "56.1", d.String())
}

func TestParseIntField(t *testing.T) {
	i, ok := ParseIntField(ptr("35.0"))
	require.True(t, ok)
	assert.Equal(t, 35, i)

	i, ok = ParseIntField(ptr("-12"))
	require.True(t, ok)
	assert.Equal(t, -12, i)

	i, ok = ParseIntField(ptr("42.9"))
	require.True(t, ok)
	assert.Equal(t, 42, i)

	for _, in := range []*string{nil, ptr(""), ptr("0"), ptr("0.4"), ptr("abc"),
		ptr("NaN"), ptr("Inf"), ptr("-Inf"), ptr("1e30")} {
		_, ok := ParseIntField(in)
		assert.False(t, ok)
	}
}

func TestParseDiameterDisplay(t *testing.T) {
	d, ok := ParseDiameterDisplay(ptr(`18"`))
	require.True(t, ok)
	assert.Equal(t, 18, d)

	d, ok = ParseDiameterDisplay(ptr("R17 x 7.5"))
	require.True(t, ok)
	assert.Equal(t, 17, d)

	_, ok = ParseDiameterDisplay(ptr("unknown"))
	assert.False(t, ok)
	_, ok = ParseDiameterDisplay(nil)
	assert.False(t, ok)
}

func TestNormalizeFitment(t *testing.T) {
	raw := &models.VehicleFitment{
		VehicleID:        "civic-2019",
		BoltPatternFront: ptr("5X114.3"),
		BoltPatternRear:  ptr("garbage"),
		HubBoreFront:     ptr("64.1"),
		HubBoreRear:      ptr("0"),
		OffsetMinFront:   ptr("35.0"),
		OffsetMaxFront:   ptr("50"),
		OffsetMinRear:    ptr("40"),
		RimWidthFront:    ptr("7.5"),
		RimDiameterFront: ptr(`18"`),
	}

	nf := NormalizeFitment(raw)
	assert.Equal(t, "civic-2019", nf.VehicleID)

	require.NotNil(t, nf.Front.BoltPattern)
	assert.Equal(t, "5x114.3", nf.Front.BoltPattern.String())
	require.NotNil(t, nf.Front.HubBore)
	assert.Equal(t, "64.1", nf.Front.HubBore.String())
	r, ok := nf.Front.OffsetRange()
	require.True(t, ok)
	assert.Equal(t, IntRange{Min: 35, Max: 50}, r)
	assert.Equal(t, 18, *nf.Front.Diameter)

	assert.Nil(t, nf.Rear.BoltPattern)
	assert.Nil(t, nf.Rear.HubBore)
	_, ok = nf.Rear.OffsetRange()
	assert.False(t, ok, "rear offset has no max")
	assert.Nil(t, nf.Rear.Diameter)
}
