package roadgeom

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// legendreOrder is the number of Gauss–Legendre nodes per integration
// panel. The integrands are smooth phase rotations, for which this order is
// exact to machine precision as long as a panel spans less than a few turns.
const legendreOrder = 48

// Gauss–Legendre nodes and weights on [0, 1].
var legendreX, legendreW = legendreNodes(legendreOrder)

func legendreNodes(n int) ([]float64, []float64) {
	x := make([]float64, n)
	w := make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	return x, w
}

// integrateUnit integrates f over [0, 1] split into the given number of
// equal panels.
func integrateUnit(f func(tau float64) float64, panels int) float64 {
	panels = max(panels, 1)
	h := 1 / float64(panels)
	var sum float64
	for p := range panels {
		lo := float64(p) * h
		for i, x := range legendreX {
			sum += legendreW[i] * f(lo+h*x)
		}
	}
	return sum * h
}

// fresnelMoments evaluates the generalized Fresnel integrals
//
//	X = ∫₀¹ cos(a/2·τ² + b·τ + c) dτ
//	Y = ∫₀¹ sin(a/2·τ² + b·τ + c) dτ
//
// together with the partial derivatives of Y with respect to a and b.
func fresnelMoments(a, b, c float64) (x, y, dyda, dydb float64) {
	panels := phasePanels(a, b)
	phase := func(tau float64) float64 {
		return (0.5*a*tau+b)*tau + c
	}
	x = integrateUnit(func(tau float64) float64 { return math.Cos(phase(tau)) }, panels)
	y = integrateUnit(func(tau float64) float64 { return math.Sin(phase(tau)) }, panels)
	dyda = integrateUnit(func(tau float64) float64 { return 0.5 * tau * tau * math.Cos(phase(tau)) }, panels)
	dydb = integrateUnit(func(tau float64) float64 { return tau * math.Cos(phase(tau)) }, panels)
	return x, y, dyda, dydb
}

// phasePanels picks enough panels that each covers at most one full turn of
// the phase a/2·τ² + b·τ over [0, 1].
func phasePanels(a, b float64) int {
	span := math.Abs(0.5*a) + math.Abs(b)
	return 1 + int(span/(2*math.Pi))
}
