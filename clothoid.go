package roadgeom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Clothoid is an Euler spiral base curve: its heading is
//
//	θ(s) = Curvature·s + ½·CurvatureRate·s²
//
// so that curvature changes linearly with arc length.
type Clothoid struct {
	Curvature     float64
	CurvatureRate float64
	Length        float64
	Determinant   float64
	Valid         bool
}

const (
	clothoidMaxIter   = 50
	clothoidTolerance = 1e-12
)

// guessCoeffs seed the Newton iteration of FitClothoid with a fitted
// polynomial in the two chord angles.
var guessCoeffs = [6]float64{
	2.989696028701907,
	0.716228953608281,
	-0.458969738821509,
	-0.502821153340377,
	0.261062141752652,
	-0.045854475238709,
}

// FitClothoid fits a clothoid from the local origin, heading along ⟨1, 0⟩,
// to end, arriving with the relative heading headingEnd.
//
// The fit solves the G1 Hermite interpolation problem: writing the spiral
// over the normalized parameter τ = s/L as the phase A·τ² + (δ−A)·τ + φ0
// relative to the chord, the end point lies on the chord exactly when the
// sine moment vanishes, which is solved for A by Newton's method.
//
// headingEnd is matched modulo 2π: the spiral may wind further than π, in
// which case Params reports the turn in Angle and the wrapped heading in
// HeadingEnd.
//
// Coincident points and problems without a forward-going solution yield the
// zero-length sentinel with Valid false.
func FitClothoid(end Point, headingEnd float64) Clothoid {
	chord := Vec2(end)
	r := chord.Hypot()
	if r == 0 {
		return Clothoid{}
	}
	phi := chord.Angle()
	phi0 := normalizeAngle(-phi)
	phi1 := normalizeAngle(headingEnd - phi)
	delta := phi1 - phi0

	A := guessA(phi0, phi1)
	converged := false
	for range clothoidMaxIter {
		_, y, dyda, dydb := fresnelMoments(2*A, delta-A, phi0)
		// d/dA Y(2A, δ−A, φ0)
		dy := 2*dyda - dydb
		if dy == 0 || math.IsNaN(dy) {
			break
		}
		step := y / dy
		A -= step
		if math.Abs(step) <= clothoidTolerance*max(1, math.Abs(A)) {
			converged = true
			break
		}
	}
	if !converged {
		return Clothoid{}
	}

	x, y, _, _ := fresnelMoments(2*A, delta-A, phi0)
	if x <= 0 || !scalar.EqualWithinAbs(y, 0, 1e-9) {
		return Clothoid{}
	}
	l := r / x
	return Clothoid{
		Curvature:     (delta - A) / l,
		CurvatureRate: 2 * A / (l * l),
		Length:        l,
		Determinant:   Vec(1, 0).Cross(chord),
		Valid:         true,
	}
}

func guessA(phi0, phi1 float64) float64 {
	x := phi0 / math.Pi
	y := phi1 / math.Pi
	xy := x * y
	x2y2 := x*x + y*y
	x4y4 := x*x*x*x + y*y*y*y
	c := guessCoeffs
	return (phi0 + phi1) * (c[0] + xy*(c[1]+xy*c[2]) + (c[3]+xy*c[4])*x2y2 + c[5]*x4y4)
}

// HeadingAt returns the tangent heading at arc length s.
func (c Clothoid) HeadingAt(s float64) float64 {
	return (c.Curvature + 0.5*c.CurvatureRate*s) * s
}

// CurvatureAt returns the curvature at arc length s.
func (c Clothoid) CurvatureAt(s float64) float64 {
	return c.Curvature + c.CurvatureRate*s
}

func (c Clothoid) Params() CurveParams {
	heading := c.HeadingAt(c.Length)
	return CurveParams{
		Curvature:    c.Curvature,
		CurvatureEnd: c.CurvatureAt(c.Length),
		Angle:        heading,
		HeadingEnd:   normalizeAngle(heading),
		Length:       c.Length,
		Determinant:  c.Determinant,
		Valid:        c.Valid,
	}
}

// Eval implements Curve by integrating the unit tangent from 0 to s.
func (c Clothoid) Eval(s float64) Station {
	st := Station{
		Heading:   c.HeadingAt(s),
		Curvature: c.CurvatureAt(s),
	}
	if s == 0 {
		return st
	}
	// Over τ ∈ [0, 1] the heading is a/2·τ² + b·τ with a = κ'·s², b = κ·s.
	a := c.CurvatureRate * s * s
	b := c.Curvature * s
	panels := phasePanels(a, b)
	x := integrateUnit(func(tau float64) float64 { return math.Cos(c.HeadingAt(s * tau)) }, panels)
	y := integrateUnit(func(tau float64) float64 { return math.Sin(c.HeadingAt(s * tau)) }, panels)
	st.Point = Pt(s*x, s*y)
	return st
}
