package roadgeom

import (
	"math"

	"github.com/pkg/errors"
)

// Family identifies the curve law a segment follows.
type Family string

const (
	FamilyArc      Family = "arc"
	FamilyClothoid Family = "clothoid"
	FamilyStraight Family = "straight"
)

// ParseFamily maps a curve tag onto a known [Family].
func ParseFamily(s string) (Family, error) {
	switch f := Family(s); f {
	case FamilyArc, FamilyClothoid, FamilyStraight:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFamily, "%q", s)
	}
}

// Curve is a base curve expressed in a segment's local frame. Every base
// curve starts at the local origin with heading 0 and is parametrized by arc
// length.
type Curve interface {
	// Params returns the intrinsic parameters the curve was fitted with.
	Params() CurveParams
	// Eval evaluates the curve at arc length s. Values of s beyond the
	// fitted length extrapolate the curve law; they are not an error.
	Eval(s float64) Station
}

var (
	_ Curve = Arc{}
	_ Curve = Clothoid{}
	_ Curve = Line{}
)

// CurveParams are the intrinsic parameters of a fitted base curve.
//
// For arcs, Length == Radius*|Angle| and |Angle| <= π always hold, and the
// sign of Curvature follows the sign of Determinant. Radius is zero for
// curves without a constant radius.
type CurveParams struct {
	Radius       float64
	Curvature    float64
	CurvatureEnd float64
	// Angle is the signed turn angle of the curve.
	Angle float64
	// OffsetAngle is the angular phase, 0 or π, that puts the start of an
	// arc at angle zero relative to its center.
	OffsetAngle float64
	// OffsetY is the lateral displacement of the arc center from the local x
	// axis.
	OffsetY float64
	// HeadingEnd is the final heading relative to the start heading, at
	// most π in magnitude. It differs from Angle when a curve winds further.
	HeadingEnd float64
	Length     float64
	// Determinant is positive when the end point lies left of the start
	// heading ray and non-positive otherwise.
	Determinant float64
	// Valid is false for the degenerate, zero-length fallback.
	Valid bool
}

// Station is one evaluated position on a base curve, in the local frame.
type Station struct {
	Point Point
	// Heading is the tangent direction at Point, relative to the start
	// heading.
	Heading   float64
	Curvature float64
}

// Normal returns the unit normal pointing left of the direction of travel.
func (st Station) Normal() Vec2 {
	return VecFromAngle(st.Heading + math.Pi/2)
}

// Offset returns the point t units left of the station (right for negative
// t).
func (st Station) Offset(t float64) Point {
	return st.Point.Translate(st.Normal().Mul(t))
}

// normalizeAngle wraps th into (-π, π].
func normalizeAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th <= -math.Pi {
		th += 2 * math.Pi
	} else if th > math.Pi {
		th -= 2 * math.Pi
	}
	return th
}
