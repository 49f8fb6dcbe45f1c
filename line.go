package roadgeom

// Line is the straight base curve. It runs from P0, the local origin, along
// the start heading to P1.
type Line struct {
	P0 Point
	P1 Point
}

// FitLine projects end onto the start heading ray and returns the line up
// to the projected point. An end point that projects behind the start
// yields the zero-length line.
func FitLine(end Point) Line {
	return Line{P1: Pt(max(end.X, 0), 0)}
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Params() CurveParams {
	n := l.Length()
	return CurveParams{
		Length: n,
		Valid:  n > 0,
	}
}

// Eval implements Curve.
func (l Line) Eval(s float64) Station {
	return Station{Point: l.P0.Translate(Vec(s, 0))}
}

