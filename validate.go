package roadgeom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ValidateInput checks a start/end pair before a host commits a segment.
// Update itself accepts any input; this is the policy of interactive tools.
func (g *Geometry) ValidateInput(pointStart, pointEnd r3.Vector) error {
	var err error
	for _, v := range []struct {
		name string
		v    r3.Vector
	}{{"start", pointStart}, {"end", pointEnd}} {
		if !finite(v.v) {
			err = multierr.Append(err, errors.Wrapf(ErrNonFinite, "%s point %v", v.name, v.v))
		}
	}
	if err != nil {
		return err
	}

	d := PtFromVector(pointEnd).Distance(PtFromVector(pointStart))
	switch {
	case d == 0:
		return ErrCoincidentPoints
	case d > g.cfg.MaxLength:
		return errors.Wrapf(ErrSegmentTooLong, "%.1f m > %.1f m", d, g.cfg.MaxLength)
	}
	return nil
}

func finite(v r3.Vector) bool {
	pt := PtFromVector(v)
	return !pt.IsNaN() && !pt.IsInf() && !math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
