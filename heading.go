package roadgeom

import (
	"github.com/golang/geo/r3"
)

// SuggestHeadingEnd proposes an end heading for a segment whose end point is
// free, as when the user drags it onto empty ground. Part of the chord's
// component along the start heading, given by the configured heading ratio,
// is removed and the heading of the remainder is returned. Coincident
// points yield 0.
func (g *Geometry) SuggestHeadingEnd(pointStart r3.Vector, headingStart float64, pointEnd r3.Vector) float64 {
	chord := PtFromVector(pointEnd).Sub(PtFromVector(pointStart))
	adjacent := chord.Project(VecFromAngle(headingStart))
	v := chord.Sub(adjacent.Mul(g.cfg.HeadingRatio))
	if v.Hypot2() == 0 {
		return 0
	}
	return v.Angle()
}

// HeadingStartDifference returns the signed angle from the chord between
// pointStart and pointEndNew to the previous start heading. Hosts use it to
// rotate a free start heading while the end point moves. Coincident points
// yield 0.
func HeadingStartDifference(pointStart r3.Vector, headingStartOld float64, pointEndNew r3.Vector) float64 {
	chord := PtFromVector(pointEndNew).Sub(PtFromVector(pointStart))
	if chord.Hypot2() == 0 {
		return 0
	}
	return chord.AngleTo(VecFromAngle(headingStartOld))
}
