package fitment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Axle selects which axles of the vehicle are matched.
type Axle string

const (
	AxleFront Axle = "front"
	AxleRear  Axle = "rear"
	AxleBoth  Axle = "both"
)

// ParseAxle maps the query value; empty means both.
func ParseAxle(s string) (Axle, error) {
	switch Axle(s) {
	case "", AxleBoth:
		return AxleBoth, nil
	case AxleFront, AxleRear:
		return Axle(s), nil
	}
	return "", fmt.Errorf("invalid axle %q", s)
}

func (a Axle) readsFront() bool { return a != AxleRear }
func (a Axle) readsRear() bool  { return a != AxleFront }

// WidthPolicy decides how two known rim widths combine.
type WidthPolicy string

const (
	// WidthPolicyFront centers the band on the front width and ignores the rear.
	WidthPolicyFront WidthPolicy = "front"
	// WidthPolicyIntersect intersects the two ±1" bands, falling back to the
	// front band when they do not overlap.
	WidthPolicyIntersect WidthPolicy = "intersect"
)

// WidthTolerance is the half width of the rim width band, in inches.
var WidthTolerance = decimal.NewFromInt(1)

type IntRange struct {
	Min, Max int
}

func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

type DecimalRange struct {
	Min, Max decimal.Decimal
}

// Effective is the single set of constraints the predicates are built from.
// Nil fields are not filtered on.
type Effective struct {
	BoltPatterns []BoltPattern
	HubBoreMin   *decimal.Decimal
	Offset       *IntRange
	Width        *DecimalRange
	// AnyPattern drops the bolt pattern requirement. Only the catalog
	// listing sets it; a vehicle never does.
	AnyPattern bool
}

// ResolveEffective combines the two axles of f for the selector.
func ResolveEffective(f NormalizedFitment, axle Axle, policy WidthPolicy) Effective {
	return Effective{
		BoltPatterns: ResolveBoltPatterns(f, axle),
		HubBoreMin:   ResolveHubBore(f, axle),
		Offset:       ResolveOffsetRange(f, axle),
		Width:        ResolveWidth(f, axle, policy),
	}
}

// ResolveBoltPatterns lists the distinct parsed patterns, front first.
func ResolveBoltPatterns(f NormalizedFitment, axle Axle) []BoltPattern {
	var out []BoltPattern
	add := func(bp *BoltPattern) {
		if bp == nil {
			return
		}
		for _, seen := range out {
			if seen.Equal(*bp) {
				return
			}
		}
		out = append(out, *bp)
	}
	if axle.readsFront() {
		add(f.Front.BoltPattern)
	}
	if axle.readsRear() {
		add(f.Rear.BoltPattern)
	}
	return out
}

// ResolveHubBore returns the larger known bore: the wheel has to clear both hubs.
func ResolveHubBore(f NormalizedFitment, axle Axle) *decimal.Decimal {
	var front, rear *decimal.Decimal
	if axle.readsFront() {
		front = f.Front.HubBore
	}
	if axle.readsRear() {
		rear = f.Rear.HubBore
	}
	switch {
	case front != nil && rear != nil:
		m := decimal.Max(*front, *rear)
		return &m
	case front != nil:
		return front
	default:
		return rear
	}
}

// ResolveOffsetRange intersects the complete axle ranges. An empty
// intersection falls back to the front range.
func ResolveOffsetRange(f NormalizedFitment, axle Axle) *IntRange {
	var front, rear *IntRange
	if axle.readsFront() {
		if r, ok := f.Front.OffsetRange(); ok {
			front = &r
		}
	}
	if axle.readsRear() {
		if r, ok := f.Rear.OffsetRange(); ok {
			rear = &r
		}
	}
	switch {
	case front != nil && rear != nil:
		in := IntRange{Min: max(front.Min, rear.Min), Max: min(front.Max, rear.Max)}
		if in.Min > in.Max {
			return front
		}
		return &in
	case front != nil:
		return front
	default:
		return rear
	}
}

// ResolveWidth returns the ±WidthTolerance band around the axle width.
func ResolveWidth(f NormalizedFitment, axle Axle, policy WidthPolicy) *DecimalRange {
	var front, rear *decimal.Decimal
	if axle.readsFront() {
		front = f.Front.Width
	}
	if axle.readsRear() {
		rear = f.Rear.Width
	}
	switch {
	case front != nil && rear != nil:
		fb := widthBand(*front)
		if policy != WidthPolicyIntersect {
			return &fb
		}
		rb := widthBand(*rear)
		in := DecimalRange{Min: decimal.Max(fb.Min, rb.Min), Max: decimal.Min(fb.Max, rb.Max)}
		if in.Min.GreaterThan(in.Max) {
			return &fb
		}
		return &in
	case front != nil:
		b := widthBand(*front)
		return &b
	case rear != nil:
		b := widthBand(*rear)
		return &b
	}
	return nil
}

func widthBand(w decimal.Decimal) DecimalRange {
	return DecimalRange{Min: w.Sub(WidthTolerance), Max: w.Add(WidthTolerance)}
}
