package roadgeom

import (
	"math"
)

// Arc is the circular base curve of a segment: the circle through the local
// origin, tangent to the x axis there, that passes through the end point.
type Arc struct {
	Radius      float64
	Curvature   float64
	Angle       float64
	OffsetAngle float64
	OffsetY     float64
	HeadingEnd  float64
	Length      float64
	Determinant float64
	Valid       bool
}

// FitArc fits an arc from the local origin, heading along ⟨1, 0⟩, to end.
//
// When end lies on the x axis, or within rounding of it, no finite circle
// exists. FitArc then returns the zero-length sentinel arc with Radius 1,
// Curvature 1 and Valid false instead of failing.
func FitArc(end Point) Arc {
	radius, angle, det, ok := arcRadiusAngleDet(Point{}, end)
	if !ok {
		return Arc{
			Radius:    1,
			Curvature: 1,
			OffsetY:   1,
		}
	}

	a := Arc{
		Radius:      radius,
		Angle:       angle,
		Determinant: det,
		Valid:       true,
	}
	// The turn side and the subtended angle come from two independent sign
	// sources. Where they disagree the end point is (nearly) behind the
	// start, and the arc is capped at a half circle.
	if det > 0 {
		a.OffsetAngle = 0
		a.Curvature = 1 / radius
		a.OffsetY = radius
		if a.Angle < 0 {
			a.Angle = math.Pi
		}
	} else {
		a.OffsetAngle = math.Pi
		a.Curvature = -1 / radius
		a.OffsetY = -radius
		if a.Angle > 0 {
			a.Angle = -math.Pi
		}
	}
	a.HeadingEnd = a.Angle
	a.Length = a.Radius * math.Abs(a.Angle)
	return a
}

// arcRadiusAngleDet finds the center of the circle through start that is
// tangent to ⟨1, 0⟩ there and passes through end. The center is where the
// normal of the heading at start crosses the perpendicular bisector of the
// chord. It reports false if those lines are parallel or so close to
// parallel that the circle is not representable.
func arcRadiusAngleDet(start, end Point) (radius, angle, det float64, ok bool) {
	p := Vec2(start)
	a := Vec(0, 1)
	q := Vec2(start.Midpoint(end))
	b := start.Sub(end).Turn90()

	if a.Turn90().Dot(b) == 0 {
		return 0, 0, 0, false
	}

	// Crossing point of p + t·a and q + u·b via signed areas.
	bo := b.Turn90()
	c := a.Mul(q.Dot(bo)).Sub(b.Mul(p.Dot(a.Turn90()))).Mul(1 / a.Dot(bo))
	center := Point(c)

	if center.IsNaN() || center.IsInf() {
		return 0, 0, 0, false
	}

	radius = center.Sub(start).Hypot()
	det = Vec(1, 0).Cross(end.Sub(start))
	angle = start.Sub(center).AngleTo(end.Sub(center))
	// An end point within rounding of the x axis puts the center so far out
	// that the subtended angle underflows or the radius overflows.
	if angle == 0 || math.IsNaN(angle) || math.IsInf(radius, 0) {
		return 0, 0, 0, false
	}
	return radius, angle, det, true
}

func (a Arc) Params() CurveParams {
	return CurveParams{
		Radius:       a.Radius,
		Curvature:    a.Curvature,
		CurvatureEnd: a.Curvature,
		Angle:        a.Angle,
		OffsetAngle:  a.OffsetAngle,
		OffsetY:      a.OffsetY,
		HeadingEnd:   a.HeadingEnd,
		Length:       a.Length,
		Determinant:  a.Determinant,
		Valid:        a.Valid,
	}
}

// Center returns the center of the arc's circle in the local frame.
func (a Arc) Center() Point {
	return Pt(0, a.OffsetY)
}

// Eval implements Curve. The circle is swept by s/Radius radians around
// its center, counter-clockwise for left turns and clockwise otherwise.
func (a Arc) Eval(s float64) Station {
	angleS := s / a.Radius
	if a.Determinant <= 0 {
		angleS = -angleS
	}
	sin, cos := math.Sincos(angleS + a.OffsetAngle - math.Pi/2)
	hdgT := angleS + math.Pi/2
	return Station{
		Point:     Pt(cos*a.Radius, sin*a.Radius+a.OffsetY),
		Heading:   hdgT - math.Pi/2,
		Curvature: a.Curvature,
	}
}
