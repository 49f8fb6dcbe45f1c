package roadgeom

import (
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestGeometry(t *testing.T, family Family) (*Geometry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := New(Config{Family: family, Logger: zap.New(core)})
	if err != nil {
		t.Fatal(err)
	}
	return g, logs
}

func collect(seq iter.Seq[r3.Vector]) []r3.Vector {
	return slices.Collect(seq)
}

func TestNewConfig(t *testing.T) {
	if _, err := New(Config{Family: "spline"}); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("got %v, expected ErrUnknownFamily", err)
	}
	if _, err := New(Config{Family: FamilyArc, HeadingRatio: 2}); err == nil {
		t.Error("expected an error for heading ratio 2")
	}
	if _, err := New(Config{Family: FamilyArc, MaxLength: -1}); err == nil {
		t.Error("expected an error for a negative max length")
	}

	g, err := New(Config{Family: FamilyClothoid, SnapFilter: "OpenDRIVE"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Family() != FamilyClothoid || g.SnapFilter() != "OpenDRIVE" {
		t.Errorf("got family %q, snap filter %q", g.Family(), g.SnapFilter())
	}
	if g.cfg.HeadingRatio != DefaultHeadingRatio || g.cfg.MaxLength != DefaultMaxLength {
		t.Errorf("defaults not applied: %+v", g.cfg)
	}
}

func TestUpdateArcScenarios(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	opt := cmpopts.EquateApprox(0, 1e-9)

	left := g.Update(r3.Vector{}, 0, r3.Vector{X: 10, Y: 10}, 0)
	if cp := left.CurveParams(); cp.Determinant <= 0 {
		t.Errorf("expected a left turn, got determinant %g", cp.Determinant)
	}
	diff(t, SegmentParams{
		Curve:      FamilyArc,
		PointEnd:   r3.Vector{X: 10, Y: 10},
		HeadingEnd: math.Pi / 2,
		Angle:      math.Pi / 2,
		Curvature:  0.1,
		Length:     10 * math.Pi / 2,
	}, left.Params, opt)

	right := g.Update(r3.Vector{}, 0, r3.Vector{X: 10, Y: -10}, 0)
	if cp := right.CurveParams(); cp.Determinant >= 0 || cp.Radius != 10 {
		t.Errorf("expected a right turn of radius 10, got %+v", cp)
	}
	diff(t, SegmentParams{
		Curve:      FamilyArc,
		PointEnd:   r3.Vector{X: 10, Y: -10},
		HeadingEnd: -math.Pi / 2,
		Angle:      -math.Pi / 2,
		Curvature:  -0.1,
		Length:     10 * math.Pi / 2,
	}, right.Params, opt)
}

func TestUpdateFrameIndependence(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	start := r3.Vector{X: 5, Y: -3, Z: 2}
	const heading = 0.7
	frame := NewRigidTransform(start, heading)
	end := frame.ToWorld(r3.Vector{X: 10, Y: 10})

	sg := g.Update(start, heading, end, 0)
	diff(t, CurveParams{
		Radius:       10,
		Curvature:    0.1,
		CurvatureEnd: 0.1,
		Angle:        math.Pi / 2,
		OffsetY:      10,
		HeadingEnd:   math.Pi / 2,
		Length:       5 * math.Pi,
		Determinant:  10,
		Valid:        true,
	}, sg.CurveParams(), cmpopts.EquateApprox(0, 1e-9))
	assertNearFloat(t, "heading end", sg.Params.HeadingEnd, heading+math.Pi/2, 1e-12)
	assertNearVector(t, sg.Params.PointEnd, end, 1e-9)

	pts, _ := sg.SampleGlobal(0, []float64{0})
	assertNearVector(t, collect(pts)[0], start, 1e-9)
	pts, _ = sg.SampleGlobal(sg.Params.Length, []float64{0})
	assertNearVector(t, collect(pts)[0], end, 1e-9)
}

func TestUpdateClampsEndBehindStart(t *testing.T) {
	g, logs := newTestGeometry(t, FamilyArc)
	start := r3.Vector{}
	const heading = math.Pi / 2

	sg := g.Update(start, heading, r3.Vector{X: 3, Y: -5}, 0)
	if n := logs.FilterMessage("clamping end point behind start").Len(); n != 1 {
		t.Errorf("got %d clamp log entries, expected 1", n)
	}
	assertNearVector(t, sg.Params.PointEnd, r3.Vector{X: 3}, 1e-9)
	if x := sg.Frame.ToLocal(sg.Params.PointEnd).X; x < -1e-12 {
		t.Errorf("reported end point has local x %g", x)
	}

	cp := sg.CurveParams()
	if math.Abs(cp.Angle) != math.Pi {
		t.Errorf("got angle %g, expected a half circle", cp.Angle)
	}
	assertNearFloat(t, "length", cp.Length, cp.Radius*math.Pi, 1e-12)
	assertNearFloat(t, "radius", cp.Radius, 1.5, 1e-9)
}

func TestUpdateNeverReportsEndBehindStart(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	start := r3.Vector{X: 1, Y: 1}
	for _, heading := range []float64{0, 1, -2.5, math.Pi} {
		for _, end := range []r3.Vector{{X: -4, Y: 2}, {X: 6, Y: -6}, {X: 1, Y: -9}, {X: -20, Y: -1}} {
			sg := g.Update(start, heading, end, 0)
			if x := sg.Frame.ToLocal(sg.Params.PointEnd).X; x < -1e-9 {
				t.Errorf("heading %g, end %v: reported end has local x %g", heading, end, x)
			}
		}
	}
}

func TestUpdateDegenerate(t *testing.T) {
	g, logs := newTestGeometry(t, FamilyArc)
	for _, d := range []float64{0, 1, 250} {
		sg := g.Update(r3.Vector{}, 0, r3.Vector{X: d}, 0)
		if !sg.Empty() {
			t.Errorf("d=%g: expected an empty segment", d)
		}
		diff(t, SegmentParams{
			Curve:     FamilyArc,
			PointEnd:  r3.Vector{X: d},
			Curvature: 1,
		}, sg.Params)
		cp := sg.CurveParams()
		if cp.Radius != 1 || cp.Angle != 0 || cp.Valid {
			t.Errorf("d=%g: got %+v, expected the sentinel arc", d, cp)
		}
		if n := len(slices.Collect(sg.Stations(1))); n != 0 {
			t.Errorf("d=%g: got %d stations for an empty segment", d, n)
		}
	}
	if n := logs.FilterMessage("no feasible curve, using zero-length segment").Len(); n != 3 {
		t.Errorf("got %d degenerate log entries, expected 3", n)
	}
}

func TestSampleLocalRoundTrip(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	for _, end := range []r3.Vector{{X: 10, Y: 10}, {X: 10, Y: -10}, {X: 4, Y: 1}, {X: 30, Y: -2}} {
		sg := g.Update(r3.Vector{X: 2, Y: 3}, -0.4, end, 0)

		pts, curvature := sg.SampleLocal(0, []float64{0})
		assertNearVector(t, collect(pts)[0], r3.Vector{}, 1e-9)
		assertNearFloat(t, "start tangent", sg.Curve.Eval(0).Heading, 0, 1e-12)
		assertNearFloat(t, "curvature", curvature, sg.Params.Curvature, 0)

		pts, _ = sg.SampleLocal(sg.Params.Length, []float64{0})
		assertNearVector(t, collect(pts)[0], sg.Frame.ToLocal(sg.Params.PointEnd), 1e-9)
	}
}

func TestSampleLocalLateralOffsets(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	sg := g.Update(r3.Vector{}, 0, r3.Vector{X: 12, Y: -5}, 0)
	ts := []float64{-3.5, 0, 1.25, 4}

	for _, s := range []float64{0, 0.5, sg.Params.Length / 2, sg.Params.Length, 2 * sg.Params.Length} {
		pts, _ := sg.SampleLocal(s, ts)
		got := collect(pts)
		if len(got) != len(ts) {
			t.Fatalf("got %d points, expected %d", len(got), len(ts))
		}
		center := got[1]
		for i, off := range ts {
			assertNearFloat(t, "offset distance", got[i].Sub(center).Norm(), math.Abs(off), 1e-9)
			if got[i].Z != 0 {
				t.Errorf("got z %g, expected a planar sample", got[i].Z)
			}
		}

		// The sequence is restartable and yields the same points again.
		diff(t, got, collect(pts))
	}
}

func TestSampleGlobalHeight(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	sg := g.Update(r3.Vector{Z: 1}, 0, r3.Vector{X: 10, Y: 10, Z: 4}, 0)
	if sg.Params.PointEnd.Z != 4 {
		t.Errorf("got end height %g, expected 4", sg.Params.PointEnd.Z)
	}
	pts, _ := sg.SampleGlobal(3, []float64{-1, 1})
	for v := range pts {
		if v.Z != 1 {
			t.Errorf("got sample height %g, expected the start height 1", v.Z)
		}
	}
}

func TestUpdateClothoid(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyClothoid)
	start := r3.Vector{X: 1, Y: 2}
	const heading = 0.3
	end := NewRigidTransform(start, heading).ToWorld(r3.Vector{X: 10, Y: 2})

	sg := g.Update(start, heading, end, heading+0.6)
	if sg.Empty() {
		t.Fatal("unexpected empty clothoid segment")
	}
	assertNearFloat(t, "heading end", sg.Params.HeadingEnd, heading+0.6, 1e-7)
	if sg.Params.CurvatureEnd == 0 || sg.Params.CurvatureEnd == sg.Params.Curvature {
		t.Errorf("expected a varying curvature, got %g and %g", sg.Params.Curvature, sg.Params.CurvatureEnd)
	}

	pts, curvature := sg.SampleGlobal(sg.Params.Length, []float64{0})
	assertNearVector(t, collect(pts)[0], end, 1e-6)
	assertNearFloat(t, "end curvature", curvature, sg.Params.CurvatureEnd, 1e-12)
}

func TestUpdateStraight(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyStraight)
	sg := g.Update(r3.Vector{}, 0, r3.Vector{X: 3, Y: 4}, 0)
	diff(t, SegmentParams{
		Curve:    FamilyStraight,
		PointEnd: r3.Vector{X: 3},
		Length:   3,
	}, sg.Params, cmpopts.EquateApprox(0, 1e-12))
}

func TestStations(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	sg := g.Update(r3.Vector{}, 0, r3.Vector{X: 10, Y: 10}, 0)

	ss := slices.Collect(sg.Stations(1))
	if len(ss) != 17 {
		t.Fatalf("got %d stations, expected 17", len(ss))
	}
	if ss[0] != 0 || ss[len(ss)-1] != sg.Params.Length {
		t.Errorf("stations %v do not span [0, %g]", ss, sg.Params.Length)
	}
	if !slices.IsSorted(ss) {
		t.Errorf("stations %v are not increasing", ss)
	}

	diff(t, []float64{0, sg.Params.Length}, slices.Collect(sg.Stations(0)))
}

func TestBoundingBox(t *testing.T) {
	g, _ := newTestGeometry(t, FamilyArc)
	sg := g.Update(r3.Vector{}, 0, r3.Vector{X: 10, Y: 10}, 0)

	diff(t, Rect{0, 0, 10, 10}, sg.BoundingBox(0.5, []float64{0}), cmpopts.EquateApprox(0, 1e-9))

	// The right border runs on the outer circle of radius 12.
	diff(t, Rect{0, -2, 12, 10}, sg.BoundingBox(0.5, []float64{-2, 2}), cmpopts.EquateApprox(0, 1e-9))

	// Without offsets only the start point is covered.
	diff(t, Rect{0, 0, 0, 0}, sg.BoundingBox(0.5, nil))
}
