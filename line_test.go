package roadgeom

import (
	"testing"
)

func TestFitLine(t *testing.T) {
	l := FitLine(Pt(3, 4))
	diff(t, Line{P1: Pt(3, 0)}, l)
	diff(t, CurveParams{Length: 3, Valid: true}, l.Params())

	st := l.Eval(2)
	diff(t, Station{Point: Pt(2, 0)}, st)
	assertNear(t, st.Offset(1.5), Pt(2, 1.5), 1e-12)

	behind := FitLine(Pt(-2, 1))
	if p := behind.Params(); p.Length != 0 || p.Valid {
		t.Errorf("got %+v, expected a zero-length line", p)
	}
}
