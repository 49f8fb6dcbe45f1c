package roadgeom

import "github.com/pkg/errors"

var (
	// ErrUnknownFamily is returned for curve tags other than the known
	// families.
	ErrUnknownFamily = errors.New("unknown curve family")
	// ErrCoincidentPoints is returned when start and end share their
	// planar position.
	ErrCoincidentPoints = errors.New("start and end point can not be the same")
	// ErrSegmentTooLong is returned when the chord exceeds the configured
	// maximum length.
	ErrSegmentTooLong = errors.New("start and end point are too far apart")
	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("non-finite coordinate")
)
