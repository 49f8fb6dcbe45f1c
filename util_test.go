package roadgeom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func assertNearVector(t *testing.T, v0, v1 r3.Vector, epsilon float64) {
	t.Helper()
	if d := v1.Sub(v0).Norm(); d > epsilon {
		t.Fatalf("got %v, expected %v", v0, v1)
	}
}

func assertNearFloat(t *testing.T, what string, got, want, epsilon float64) {
	t.Helper()
	if d := math.Abs(got - want); d > epsilon || math.IsNaN(got) {
		t.Fatalf("%s: got %g, expected %g", what, got, want)
	}
}
