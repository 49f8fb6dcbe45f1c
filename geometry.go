package roadgeom

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultHeadingRatio is the share of the chord's projection onto the
	// start heading that SuggestHeadingEnd removes.
	DefaultHeadingRatio = 0.75
	// DefaultMaxLength is the longest chord, in meters, ValidateInput
	// accepts.
	DefaultMaxLength = 10000.0
)

// Config configures a [Geometry].
type Config struct {
	// Family selects the curve law of every segment built by the geometry.
	Family Family `json:"curve"`
	// SnapFilter names the kind of objects an interactive host lets the
	// segment endpoints snap to, such as "OpenDRIVE". It is carried for the
	// host and has no effect on the geometry.
	SnapFilter string `json:"snap_filter,omitempty"`
	// HeadingRatio is used by SuggestHeadingEnd. Zero selects
	// DefaultHeadingRatio.
	HeadingRatio float64 `json:"heading_ratio,omitempty"`
	// MaxLength is used by ValidateInput. Zero selects DefaultMaxLength.
	MaxLength float64 `json:"max_length,omitempty"`

	Logger *zap.Logger `json:"-"`
}

// Validate reports whether the configuration can build a geometry.
func (cfg Config) Validate() error {
	if _, err := ParseFamily(string(cfg.Family)); err != nil {
		return err
	}
	if cfg.HeadingRatio < 0 || cfg.HeadingRatio > 1 {
		return errors.Errorf("heading ratio %g outside [0, 1]", cfg.HeadingRatio)
	}
	if cfg.MaxLength < 0 {
		return errors.Errorf("negative max length %g", cfg.MaxLength)
	}
	return nil
}

// Geometry builds road segments of one curve family. It holds no per-segment
// state; a Geometry may be shared by goroutines updating different
// segments.
type Geometry struct {
	cfg    Config
	logger *zap.Logger
}

// New returns a geometry for cfg.
func New(cfg Config) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid geometry config")
	}
	if cfg.HeadingRatio == 0 {
		cfg.HeadingRatio = DefaultHeadingRatio
	}
	if cfg.MaxLength == 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geometry{
		cfg:    cfg,
		logger: logger.Named("roadgeom").With(zap.String("curve", string(cfg.Family))),
	}, nil
}

// Family returns the curve family of the segments g builds.
func (g *Geometry) Family() Family { return g.cfg.Family }

// SnapFilter returns the snap filter the geometry was configured with.
func (g *Geometry) SnapFilter() string { return g.cfg.SnapFilter }

// Update fits a segment that starts at pointStart with heading headingStart
// and ends at pointEnd.
//
// The end point is first expressed in the start frame. An end point behind
// the start, with negative local x, is moved onto the local y axis; the
// reported end point is the moved one. headingEnd is the desired world
// heading at the end; only the clothoid family uses it.
//
// Update never fails. Inputs without a feasible curve produce a segment of
// length zero, which callers should skip.
func (g *Geometry) Update(pointStart r3.Vector, headingStart float64, pointEnd r3.Vector, headingEnd float64) Segment {
	frame := NewRigidTransform(pointStart, headingStart)

	local := frame.ToLocal(pointEnd)
	if local.X < 0 {
		g.logger.Debug("clamping end point behind start", zap.Float64("local_x", local.X))
		local.X = 0
	}
	if g.cfg.Family == FamilyStraight {
		local.Y = 0
	}
	end := PtFromVector(local)

	var c Curve
	switch g.cfg.Family {
	case FamilyClothoid:
		c = FitClothoid(end, normalizeAngle(headingEnd-headingStart))
	case FamilyStraight:
		c = FitLine(end)
	default:
		c = FitArc(end)
	}
	cp := c.Params()
	if !cp.Valid {
		g.logger.Debug("no feasible curve, using zero-length segment",
			zap.Float64("local_x", local.X), zap.Float64("local_y", local.Y))
	}

	params := SegmentParams{
		Curve:        g.cfg.Family,
		PointStart:   pointStart,
		HeadingStart: headingStart,
		PointEnd:     frame.ToWorld(local),
		HeadingEnd:   frame.HeadingToWorld(cp.HeadingEnd),
		Angle:        cp.Angle,
		Curvature:    cp.Curvature,
		Length:       cp.Length,
	}
	if g.cfg.Family == FamilyClothoid {
		params.CurvatureEnd = cp.CurvatureEnd
	}
	return Segment{
		Family: g.cfg.Family,
		Frame:  frame,
		Curve:  c,
		Params: params,
	}
}
