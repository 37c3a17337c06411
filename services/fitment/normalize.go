package fitment

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/shopspring/decimal"
)

// BoltPattern is a parsed "<lugs>x<pitch>" pattern. PitchMM is exact.
type BoltPattern struct {
	Lugs    int
	PitchMM decimal.Decimal
}

func (b BoltPattern) String() string {
	return fmt.Sprintf("%dx%s", b.Lugs, b.PitchMM.String())
}

// Equal compares lug count and pitch exactly.
func (b BoltPattern) Equal(o BoltPattern) bool {
	return b.Lugs == o.Lugs && b.PitchMM.Equal(o.PitchMM)
}

var (
	boltPatternRe = regexp.MustCompile(`^(\d{1,2})x(\d{2,3}(?:\.\d{1,3})?)$`)
	leadingDigits = regexp.MustCompile(`\d+`)
)

// ParseBoltPattern accepts "5x114.3", "5X114.3", "5×114.3" and surrounding whitespace.
func ParseBoltPattern(text string) (BoltPattern, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "×", "x")

	m := boltPatternRe.FindStringSubmatch(s)
	if m == nil {
		return BoltPattern{}, false
	}
	lugs, err := strconv.Atoi(m[1])
	if err != nil || lugs == 0 {
		return BoltPattern{}, false
	}
	pitch, err := decimal.NewFromString(m[2])
	if err != nil || pitch.IsZero() {
		return BoltPattern{}, false
	}
	return BoltPattern{Lugs: lugs, PitchMM: pitch}, true
}

// ParseDecimalField reads a numeric text column. Empty, unparsable and zero
// values all mean "unknown".
func ParseDecimalField(text *string) (decimal.Decimal, bool) {
	if text == nil {
		return decimal.Decimal{}, false
	}
	s := strings.TrimSpace(*text)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseIntField reads an integer text column that may be stored as "35.0".
// Fractions are truncated. Zero, NaN and values outside the int32 range mean
// unknown.
func ParseIntField(text *string) (int, bool) {
	if text == nil {
		return 0, false
	}
	s := strings.TrimSpace(*text)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	i := int(f)
	if i == 0 {
		return 0, false
	}
	return i, true
}

// ParseDiameterDisplay extracts the first run of digits: `18"` and "R18" give 18.
func ParseDiameterDisplay(text *string) (int, bool) {
	if text == nil {
		return 0, false
	}
	m := leadingDigits.FindString(*text)
	if m == "" {
		return 0, false
	}
	d, err := strconv.Atoi(m)
	if err != nil || d == 0 {
		return 0, false
	}
	return d, true
}

// AxleSpec is the typed fitment of one axle. Nil fields are unknown.
type AxleSpec struct {
	BoltPattern *BoltPattern
	HubBore     *decimal.Decimal
	OffsetMin   *int
	OffsetMax   *int
	Width       *decimal.Decimal
	Diameter    *int
}

// OffsetRange returns the axle's offset range when both ends are known.
func (a AxleSpec) OffsetRange() (IntRange, bool) {
	if a.OffsetMin == nil || a.OffsetMax == nil {
		return IntRange{}, false
	}
	return IntRange{Min: *a.OffsetMin, Max: *a.OffsetMax}, true
}

// NormalizedFitment is a vehicle's fitment after parsing.
type NormalizedFitment struct {
	VehicleID string
	Front     AxleSpec
	Rear      AxleSpec
}

// NormalizeFitment parses every raw column. It never fails: bad values become unknown.
func NormalizeFitment(v *models.VehicleFitment) NormalizedFitment {
	return NormalizedFitment{
		VehicleID: v.VehicleID,
		Front: normalizeAxle(
			v.BoltPatternFront, v.HubBoreFront,
			v.OffsetMinFront, v.OffsetMaxFront,
			v.RimWidthFront, v.RimDiameterFront,
		),
		Rear: normalizeAxle(
			v.BoltPatternRear, v.HubBoreRear,
			v.OffsetMinRear, v.OffsetMaxRear,
			v.RimWidthRear, v.RimDiameterRear,
		),
	}
}

func normalizeAxle(bolt, hub, offMin, offMax, width, diameter *string) AxleSpec {
	var a AxleSpec
	if bolt != nil {
		if bp, ok := ParseBoltPattern(*bolt); ok {
			a.BoltPattern = &bp
		}
	}
	if d, ok := ParseDecimalField(hub); ok {
		a.HubBore = &d
	}
	if i, ok := ParseIntField(offMin); ok {
		a.OffsetMin = &i
	}
	if i, ok := ParseIntField(offMax); ok {
		a.OffsetMax = &i
	}
	if d, ok := ParseDecimalField(width); ok {
		a.Width = &d
	}
	if i, ok := ParseDiameterDisplay(diameter); ok {
		a.Diameter = &i
	}
	return a
}
