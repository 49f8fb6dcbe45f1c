package roadgeom

import (
	"iter"
	"math"

	"github.com/golang/geo/r3"
)

// SegmentParams is the description of a fitted segment handed to mesh
// generation and export. Angles are in radians, lengths in meters and
// curvatures in 1/m. HeadingEnd is absolute; PointEnd is the end point after
// clamping.
type SegmentParams struct {
	Curve        Family    `json:"curve"`
	PointStart   r3.Vector `json:"point_start"`
	HeadingStart float64   `json:"heading_start"`
	PointEnd     r3.Vector `json:"point_end"`
	HeadingEnd   float64   `json:"heading_end"`
	Angle        float64   `json:"angle"`
	Curvature    float64   `json:"curvature"`
	// CurvatureEnd is only set for curves whose curvature varies.
	CurvatureEnd float64 `json:"curvature_end,omitempty"`
	Length       float64 `json:"length"`
}

// Segment is a fitted road segment, as returned by [Geometry.Update].
type Segment struct {
	Family Family
	// Frame maps the base curve's local frame to world coordinates.
	Frame  RigidTransform
	Curve  Curve
	Params SegmentParams
}

// CurveParams returns the intrinsic parameters of the base curve.
func (sg Segment) CurveParams() CurveParams {
	if sg.Curve == nil {
		return CurveParams{}
	}
	return sg.Curve.Params()
}

// Empty reports whether the segment has zero length. Empty segments are the
// result of infeasible input and produce no geometry.
func (sg Segment) Empty() bool {
	return sg.Params.Length == 0
}

// SampleLocal evaluates the segment at arc length s and returns one point for
// each lateral offset in ts, in the same order, together with the curvature
// at s. Positive offsets lie left of the direction of travel. The points are
// in the local frame and planar, with z = 0.
//
// The returned sequence can be iterated any number of times.
func (sg Segment) SampleLocal(s float64, ts []float64) (iter.Seq[r3.Vector], float64) {
	if sg.Curve == nil {
		return func(func(r3.Vector) bool) {}, 0
	}
	st := sg.Curve.Eval(s)
	return func(yield func(r3.Vector) bool) {
		for _, t := range ts {
			if !yield(st.Offset(t).Vector(0)) {
				return
			}
		}
	}, st.Curvature
}

// SampleGlobal is like SampleLocal but returns world coordinates.
func (sg Segment) SampleGlobal(s float64, ts []float64) (iter.Seq[r3.Vector], float64) {
	local, curvature := sg.SampleLocal(s, ts)
	return func(yield func(r3.Vector) bool) {
		for v := range local {
			if !yield(sg.Frame.ToWorld(v)) {
				return
			}
		}
	}, curvature
}

// Stations yields the arc lengths at which a mesh cross-section should be
// sampled: 0, step, 2·step, … and finally the segment length. A non-positive
// step yields only the two ends. Empty segments yield nothing.
func (sg Segment) Stations(step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := sg.Params.Length
		if n <= 0 {
			return
		}
		if step <= 0 {
			step = n
		}
		count := int(math.Ceil(n/step - 1e-9))
		for i := range count {
			if !yield(float64(i) * step) {
				return
			}
		}
		yield(n)
	}
}

// BoundingBox returns the planar world extents of the cross-sections at
// ts, sampled every step along the segment.
func (sg Segment) BoundingBox(step float64, ts []float64) Rect {
	r := emptyRect.UnionPoint(PtFromVector(sg.Params.PointStart))
	for s := range sg.Stations(step) {
		section := emptyRect
		pts, _ := sg.SampleGlobal(s, ts)
		for v := range pts {
			section = section.UnionPoint(PtFromVector(v))
		}
		if !section.IsEmpty() {
			r = r.Union(section)
		}
	}
	return r
}
