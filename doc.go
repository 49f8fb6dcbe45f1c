// Package roadgeom computes the geometry of single road segments: the curve
// a road centerline follows from a start pose to an end point, and samples
// of that curve and of lines parallel to it.
//
// # Segments and frames
//
// A segment starts at a world position with a heading, measured in radians
// from the +x axis, and ends at a second world position. [Geometry.Update]
// expresses the end point in the segment's local frame, whose origin is the
// start point and whose x axis points along the start heading (see
// [RigidTransform]). End points behind the start, with negative local x,
// are moved onto the local y axis, so that every segment goes forward.
//
// The local end point is then fitted by a base [Curve] of the configured
// [Family]:
//
//   - [Arc]: the circle tangent to the start heading through the end point.
//     Arcs are capped at a half circle.
//   - [Clothoid]: an Euler spiral whose curvature changes linearly with arc
//     length, fitted to the end point and a desired end heading.
//   - [Line]: the straight line along the start heading, up to the
//     projection of the end point.
//
// Inputs for which no curve exists, such as an end point exactly ahead of
// the start for arcs, never fail. They produce a segment of length zero
// that callers skip.
//
// # Sampling
//
// [Segment.SampleLocal] and [Segment.SampleGlobal] evaluate a segment at an
// arc length s and a list of lateral offsets t, positive to the left. An
// offset point lies on the parallel curve at distance |t|, which is how
// road lanes and borders are generated. Sampling beyond the segment length
// extrapolates the curve. [Segment.Stations] produces the arc lengths for a
// tessellation.
//
// The fields of [SegmentParams] follow the naming of road description
// formats such as OpenDRIVE (length, curvature, heading), so exporters can
// map them directly.
//
// # Concurrency
//
// A [Geometry] is immutable and [Segment] is a value; nothing in this
// package keeps shared state.
package roadgeom
